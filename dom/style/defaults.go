package style

import (
	"golang.org/x/net/html"
)

// Values "default" have the following semantics:
// Treat this as an inherent UA default, which should not be instantiated in memory,
// but rather will be treated implicitely by rendering code.
var nonInherited = map[string]string{
	"position":            "static",
	"background-color":    "default",
	"border-top-color":    "default",
	"border-left-color":   "default",
	"border-right-color":  "default",
	"border-bottom-color": "default",
	"flow-from":           "none",
	"flow-into":           "none",
}

var isDimension = map[string]string{
	"width":                      "auto",
	"height":                     "auto",
	"min-width":                  "none",
	"min-height":                 "none",
	"max-width":                  "none",
	"max-height":                 "none",
	"top":                        "0",
	"right":                      "0",
	"bottom":                     "0",
	"left":                       "0",
	"margin-top":                 "0",
	"margin-left":                "0",
	"margin-right":               "0",
	"margin-bottom":              "0",
	"padding-top":                "0",
	"padding-left":               "0",
	"padding-right":              "0",
	"padding-bottom":             "0",
	"border-top-width":           "medium",
	"border-left-width":          "medium",
	"border-right-width":         "medium",
	"border-bottom-width":        "medium",
	"border-top-left-radius":     "0",
	"border-top-right-radius":    "0",
	"border-bottom-left-radius":  "0",
	"border-bottom-right-radius": "0",
}

// GetUserAgentDefaultProperty returns the user-agent default property for a given key.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	p := NullStyle
	switch key {
	case "display":
		p = DisplayPropertyForHTMLNode(node)
	default:
		if dim, ok := isDimension[key]; ok {
			return Property(dim)
		}
		if p, ok := nonInherited[key]; ok {
			return Property(p)
		}
	}
	return p
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head":
		return "none"
	case "p":
		return "block-inline"
	case "html", "aside", "body", "div", "h1", "h2", "h3",
		"h4", "h5", "h6", "it", "ol", "section",
		"ul":
		return "block"
	case "i", "b", "em", "span", "strong", "a", "code":
		return "inline"
	case "li":
		return "list-item"
	case "table":
		return "table"
	case "script", "style", "template", "title", "meta", "link":
		return "none"
	}
	tracer().Debugf("unknown HTML element %s/%d will be set to display: block",
		node.Data, node.Type)
	return "block"
}

// InitializeDefaultPropertyValues creates the property map holding the
// default values for CSS properties, i.e. the values every element starts
// from before any rule is cascaded. In real-world browsers these are the
// user-agent CSS values. additionalProps go into the extension group "X".
func InitializeDefaultPropertyValues(additionalProps []KeyValue) *PropertyMap {
	m := make(map[string]*PropertyGroup, 15)
	x := NewPropertyGroup(PGX) // special group for extension properties
	for _, kv := range additionalProps {
		x.Set(kv.Key, kv.Value)
	}
	m[PGX] = x

	margins := NewPropertyGroup(PGMargins)
	margins.Set("margin-top", "0")
	margins.Set("margin-left", "0")
	margins.Set("margin-right", "0")
	margins.Set("margin-bottom", "0")
	m[PGMargins] = margins

	padding := NewPropertyGroup(PGPadding)
	padding.Set("padding-top", "0")
	padding.Set("padding-left", "0")
	padding.Set("padding-right", "0")
	padding.Set("padding-bottom", "0")
	m[PGPadding] = padding

	border := NewPropertyGroup(PGBorder)
	border.Set("border-top-color", "black")
	border.Set("border-left-color", "black")
	border.Set("border-right-color", "black")
	border.Set("border-bottom-color", "black")
	border.Set("border-top-width", "medium")
	border.Set("border-left-width", "medium")
	border.Set("border-right-width", "medium")
	border.Set("border-bottom-width", "medium")
	border.Set("border-top-style", "none")
	border.Set("border-left-style", "none")
	border.Set("border-right-style", "none")
	border.Set("border-bottom-style", "none")
	border.Set("border-top-left-radius", "0")
	border.Set("border-top-right-radius", "0")
	border.Set("border-bottom-left-radius", "0")
	border.Set("border-bottom-right-radius", "0")
	m[PGBorder] = border

	dimension := NewPropertyGroup(PGDimension)
	dimension.Set("width", "auto")
	dimension.Set("height", "auto")
	dimension.Set("min-width", "none")
	dimension.Set("min-height", "none")
	dimension.Set("max-width", "none")
	dimension.Set("max-height", "none")
	m[PGDimension] = dimension

	region := NewPropertyGroup(PGRegion)
	region.Set("flow-from", "")
	region.Set("flow-into", "")
	m[PGRegion] = region

	display := NewPropertyGroup(PGDisplay)
	display.Set("display", "block")
	display.Set("float", "none")
	display.Set("visibility", "visible")
	display.Set("position", "static")
	m[PGDisplay] = display

	color := NewPropertyGroup(PGColor)
	color.Set("color", "default")
	color.Set("background-color", "transparent")
	m[PGColor] = color

	text := NewPropertyGroup(PGText)
	text.Set("direction", "ltr")
	text.Set("white-space", "normal")
	text.Set("word-spacing", "normal")
	text.Set("letter-spacing", "normal")
	text.Set("word-break", "normal")
	text.Set("overflow-wrap", "normal")
	text.Set("hyphens", "manual")
	m[PGText] = text

	return &PropertyMap{m}
}
