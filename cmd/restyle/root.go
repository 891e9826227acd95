package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/restyle/dom/domdbg"
	"github.com/npillmayer/restyle/dom/style/cssom"
	"github.com/npillmayer/restyle/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/style/selectors"
	"github.com/npillmayer/restyle/dom/style/stylist"
	"github.com/npillmayer/restyle/dom/style/traversal"
	"github.com/npillmayer/restyle/dom/styledtree"
	"github.com/npillmayer/restyle/dom/threadstate"
	"github.com/npillmayer/restyle/tree"
	"github.com/npillmayer/schuko/schukonf/viperadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html"
)

// tracer traces with key 'restyle.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cmd")
}

var errMutation = errors.New("mutation must have the form selector:attribute=value")

func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "restyle [flags] document.html",
		Short: "Style an HTML document and restyle it after mutations",
		Args:  cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(cfgFile); err != nil {
				return err
			}
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			initializeTracing()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./restyle.yaml)")
	cmd.Flags().StringSlice("css", nil, "CSS stylesheet files, in addition to <style> elements")
	cmd.Flags().StringArray("set", nil, "set an attribute after initial styling: selector:attribute=value")
	cmd.Flags().StringArray("state", nil, "set element state after initial styling: selector:hover|focus|...")
	cmd.Flags().Int("workers", 0, "number of traversal workers (0 = GOMAXPROCS)")
	cmd.Flags().String("trace", "Error", "trace level: Error, Info or Debug")
	cmd.Flags().Bool("tree", true, "print the styled tree after restyling")
	cmd.Flags().StringSlice("pseudo", nil, "print the rules of pseudo-elements, e.g. selection,marker")
	return cmd
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("restyle")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("RESTYLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// initializeTracing routes all tracing to a Go standard logger, unless the
// configuration selects another adapter with key "tracing" ("go" or "logrus").
func initializeTracing() {
	conf := viperadapter.New("restyle")
	conf.InitDefaults()
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	adapter := tracing.GetAdapterFromConfiguration(conf, "")
	tracing.SetTraceSelector(tracing.SelectorForAdapter(adapter))
	tracer().SetTraceLevel(tracing.TraceLevelFromString(viper.GetString("trace")))
}

func run(ctx context.Context, out io.Writer, filename string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = threadstate.With(ctx, threadstate.Script)
	h, err := parseHTML(filename)
	if err != nil {
		return err
	}
	sheets, err := loadSheets(h, viper.GetStringSlice("css"))
	if err != nil {
		return err
	}
	doc, err := styledtree.Build(h)
	if err != nil {
		return err
	}
	st := stylist.New(sheets...)
	trav := &traversal.Traversal{Stylist: st, Workers: viper.GetInt("workers")}
	stats, err := trav.Restyle(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "initial:  %v\n", stats)
	mutations, err := applyMutations(ctx, doc, viper.GetStringSlice("set"), viper.GetStringSlice("state"))
	if err != nil {
		return err
	}
	if mutations > 0 {
		if stats, err = trav.Restyle(ctx, doc); err != nil {
			return err
		}
		fmt.Fprintf(out, "restyle:  %v\n", stats)
		doc.Snapshots().Reclaim(ctx)
	}
	tracer().Debugf("rule tree: %d nodes, %d collected", st.RuleTree().Size(), st.RuleTree().GC())
	if viper.GetBool("tree") {
		fmt.Fprint(out, domdbg.Print(doc.Root()))
	}
	return printPseudos(out, trav, doc, viper.GetStringSlice("pseudo"))
}

// printPseudos lists the elements which have styles for the named
// pseudo-elements, together with the rules applying to them.
func printPseudos(out io.Writer, trav *traversal.Traversal, doc *styledtree.Document, names []string) error {
	for _, name := range names {
		pe, ok := selectors.ParsePseudoElement(strings.TrimPrefix(name, "::"))
		if !ok || pe == selectors.NoPseudoElement {
			return fmt.Errorf("unknown pseudo-element %q", name)
		}
		doc.Root().Walk(func(n *tree.Node[*styledtree.StyNode]) bool {
			if cs := trav.ResolvePseudo(n.Payload, pe); cs != nil {
				fmt.Fprintf(out, "%v%v %v\n", n.Payload, pe, cs.Rules)
			}
			return true
		})
	}
	return nil
}

func parseHTML(filename string) (*html.Node, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return html.Parse(f)
}

func loadSheets(h *html.Node, files []string) ([]cssom.StyleSheet, error) {
	var sheets []cssom.StyleSheet
	for _, s := range douceuradapter.ExtractStyleElements(h) {
		sheets = append(sheets, s)
	}
	for _, name := range files {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		sheet, err := douceuradapter.Parse(string(b))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// applyMutations applies attribute and state mutations to all elements
// matching their selectors. It returns the number of elements mutated.
func applyMutations(ctx context.Context, doc *styledtree.Document, sets, states []string) (int, error) {
	n := 0
	for _, m := range sets {
		sel, attr, ok := splitMutation(m)
		key, val, hasVal := strings.Cut(attr, "=")
		if !ok || !hasVal || key == "" {
			return n, fmt.Errorf("%q: %w", m, errMutation)
		}
		nodes, err := selectNodes(doc, sel)
		if err != nil {
			return n, err
		}
		for _, sn := range nodes {
			doc.SetAttribute(ctx, sn, key, val)
			n++
		}
	}
	for _, m := range states {
		sel, names, ok := splitMutation(m)
		if !ok {
			return n, fmt.Errorf("%q: %w", m, errMutation)
		}
		var state restyle.ElementState
		for _, name := range strings.Split(names, "|") {
			s := restyle.StateFromPseudoClass(name)
			if s == 0 {
				return n, fmt.Errorf("unknown element state %q", name)
			}
			state |= s
		}
		nodes, err := selectNodes(doc, sel)
		if err != nil {
			return n, err
		}
		for _, sn := range nodes {
			doc.SetState(ctx, sn, state)
			n++
		}
	}
	return n, nil
}

// splitMutation splits at the last colon before the first '=', as selectors
// may contain colons themselves.
func splitMutation(m string) (sel, rest string, ok bool) {
	head := m
	if i := strings.IndexByte(m, '='); i >= 0 {
		head = m[:i]
	}
	i := strings.LastIndexByte(head, ':')
	if i <= 0 {
		return "", "", false
	}
	return m[:i], m[i+1:], true
}

func selectNodes(doc *styledtree.Document, text string) ([]*styledtree.StyNode, error) {
	sel, err := selectors.Parse(text)
	if err != nil {
		return nil, err
	}
	var nodes []*styledtree.StyNode
	doc.Root().Walk(func(n *tree.Node[*styledtree.StyNode]) bool {
		if sel.Match(n.Payload.HTMLNode()) {
			nodes = append(nodes, n.Payload)
		}
		return true
	})
	return nodes, nil
}
