/*
Package domdbg implements helpers to debug a styled document tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"testing"
	"text/template"

	"github.com/npillmayer/restyle/dom/style"
	"github.com/npillmayer/restyle/dom/styledtree"
	"github.com/xlab/treeprint"
)

// Print renders a styled tree as indented text, one element per line,
// together with the state of its element data and its display value.
func Print(root *styledtree.StyNode) string {
	t := treeprint.NewWithRoot(label(root))
	printChildren(root, t)
	return t.String()
}

func printChildren(sn *styledtree.StyNode, branch treeprint.Tree) {
	for _, ch := range sn.ChildNodes() {
		if ch.ChildCount() == 0 {
			branch.AddNode(label(ch))
			continue
		}
		printChildren(ch, branch.AddBranch(label(ch)))
	}
}

func label(sn *styledtree.StyNode) string {
	state := sn.ElementState()
	if values := sn.ComputedValues(); values != nil {
		return fmt.Sprintf("%v [%s, display=%s]", sn, state, values.Display())
	}
	return fmt.Sprintf("%v [%s]", sn, state)
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	StyleGroups    []string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
	PgpgTmpl       *template.Template
}

var defaultGroups = []string{
	style.PGMargins,
	style.PGPadding,
	style.PGBorder,
	style.PGDisplay,
}

// ToGraphViz outputs a diagram for a styled tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the tree, a Writer, and an optional list of style parameter groups.
// The diagram will include the computed values of all styled elements
// belonging to one of the parameter groups.
//
// If the client does not provide a list of style groups, the following
// default will be used:
//
//     - Margins
//     - Padding
//     - Border
//     - Display
//
func ToGraphViz(root *styledtree.StyNode, w io.Writer, styleGroups []string) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	gparams.PgpgTmpl = template.Must(template.New("pgpgedge").Parse(pgpgEdgeTmpl))
	gparams.StyleGroups = styleGroups
	if styleGroups == nil {
		gparams.StyleGroups = defaultGroups
	}
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*styledtree.StyNode]string, 4096)
	if err = nodes(root, w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a styled node and a testing.T, it will
// create a Graphiviz image of the styled tree under `root` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(root *styledtree.StyNode, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "styled.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing styled tree digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(root, tmpfile, nil); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N     *styledtree.StyNode
	Name  string
	State string
}

func nodes(sn *styledtree.StyNode, w io.Writer, dict map[*styledtree.StyNode]string,
	gparams *graphParamsType) error {
	//
	if err := styledNode(sn, w, dict, gparams); err != nil {
		return err
	}
	for _, ch := range sn.ChildNodes() {
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		e := edge{node{N: sn, Name: dict[sn]}, node{N: ch, Name: dict[ch]}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func styledNode(sn *styledtree.StyNode, w io.Writer, dict map[*styledtree.StyNode]string,
	gparams *graphParamsType) error {
	//
	name := fmt.Sprintf("node%05d", len(dict)+1)
	dict[sn] = name
	n := &node{N: sn, Name: name, State: sn.ElementState()}
	if err := gparams.NodeTmpl.Execute(w, n); err != nil {
		return err
	}
	return styleGroups(sn, name, w, gparams)
}

func styleGroups(sn *styledtree.StyNode, name string, w io.Writer, gparams *graphParamsType) error {
	values := sn.ComputedValues()
	if values == nil {
		return nil
	}
	var prev *style.PropertyGroup
	for _, s := range gparams.StyleGroups {
		pg := values.Group(s)
		if pg == nil {
			continue
		}
		if err := gparams.StylegroupTmpl.Execute(w, pg); err != nil {
			return err
		}
		var err error
		if prev == nil {
			err = gparams.PgedgeTmpl.Execute(w, pgedge{name, pg})
		} else {
			err = gparams.PgpgTmpl.Execute(w, []*style.PropertyGroup{prev, pg})
		}
		if err != nil {
			return err
		}
		prev = pg
	}
	return nil
}

type edge struct {
	N1, N2 node
}

type pgedge struct {
	Name      string
	PropGroup *style.PropertyGroup
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .State "unstyled" }}
{{ .Name }}	[ label={{ printf "%q" .N.String }} shape=ellipse style=dashed ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .N.String }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const styleGroupTmpl = `{{ printf "pg%p" . }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ else }}
      <tr><td colspan="2">no styles</td></tr>
      {{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const pgEdgeTmpl = `{{ .Name }} -> {{ printf "pg%p" .PropGroup }} [dir=none weight=1 style="dashed"] ;
`

const pgpgEdgeTmpl = `{{ index . 0 | printf "pg%p"  }} -> {{ index . 1 | printf "pg%p" }} [dir=none weight=1 style="dashed"] ;
`
