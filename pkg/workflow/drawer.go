package workflow

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint
)

// Drawer renders a plan's dependency graph as a DOT file suitable for
// `dot -Tsvg`. When timings are available each step is filled on a
// green-to-red ramp scaled by its share of the longest step.
type Drawer struct {
	fileName string
}

func NewDrawer(fileName string) *Drawer {
	return &Drawer{fileName: fileName}
}

const maxRGB = 240

// Draw writes the plan graph. timing may be nil for a plan that was never
// executed.
func (d *Drawer) Draw(plan *Plan, timing *Timing) error {
	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}
	defer file.Close()

	drawing, err := d.drawingGraph(plan, timing)
	if err != nil {
		return err
	}

	err = dot(drawing, file)
	if err != nil {
		return errors.Wrapf(err, "unable to render dot file %s", d.fileName)
	}

	return nil
}

// drawingGraph copies the plan graph, baking presentation attributes into
// each vertex.
func (d *Drawer) drawingGraph(plan *Plan, timing *Timing) (graph.Graph[string, string], error) {
	drawing := graph.New(graph.StringHash, graph.Directed())

	var max float64
	if timing != nil {
		max = float64(timing.Max())
	}

	for _, inv := range plan.Invocations {
		attrs := []func(*graph.VertexProperties){
			graph.VertexAttribute("shape", "box"),
		}
		if timing != nil {
			if elapsed, ok := timing.Duration(inv.Step); ok && max > 0 {
				fill, err := heatColor(float64(elapsed) / max)
				if err != nil {
					return nil, err
				}
				attrs = append(attrs,
					graph.VertexAttribute("style", "filled"),
					graph.VertexAttribute("fillcolor", fill),
					graph.VertexAttribute("xlabel", roundDuration(elapsed).String()),
				)
			}
		}
		if err := drawing.AddVertex(inv.Step.String(), attrs...); err != nil {
			return nil, errors.Wrapf(err, "unable to add vertex %s", inv.Step)
		}
	}

	adjacency, err := plan.Graph.AdjacencyMap()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read plan graph")
	}
	for parent, children := range adjacency {
		for child := range children {
			if err := drawing.AddEdge(parent, child); err != nil {
				return nil, errors.Wrapf(err, "unable to add edge from %s to %s", parent, child)
			}
		}
	}

	return drawing, nil
}

// heatColor maps a 0..1 share of the slowest step onto a green-to-red hex
// colour.
func heatColor(ratio float64) (string, error) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	red := uint8(maxRGB * ratio)
	green := uint8(maxRGB * (1 - ratio))
	c, err := colors.RGB(red, green, 0)
	if err != nil {
		return "", errors.Wrap(err, "unable to build colour")
	}

	return c.ToHEX().String(), nil
}

const dotTemplate = `strict digraph {
{{- range .Vertices}}
	"{{.Name}}" [ {{.Attrs}} ];
{{- end}}
{{- range .Edges}}
	"{{.From}}" -> "{{.To}}";
{{- end}}
}
`

type dotVertex struct {
	Name  string
	Attrs string
}

type dotEdge struct {
	From string
	To   string
}

type dotDescription struct {
	Vertices []dotVertex
	Edges    []dotEdge
}

// dot serializes the plan graph. Vertices and edges are emitted in sorted
// order so the same plan always renders the same file.
func dot(g graph.Graph[string, string], w io.Writer) error {
	desc, err := describeDOT(g)
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	return tpl.Execute(w, desc)
}

func describeDOT(g graph.Graph[string, string]) (dotDescription, error) {
	var desc dotDescription

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return desc, err
	}

	names := make([]string, 0, len(adjacency))
	for name := range adjacency {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		_, properties, err := g.VertexWithProperties(name)
		if err != nil {
			return desc, err
		}

		parts := make([]string, 0, len(properties.Attributes))
		for key, value := range properties.Attributes {
			if key == "xlabel" {
				// The duration rides inside an HTML label under the
				// step name; HTML labels stay unquoted.
				parts = append(parts, fmt.Sprintf(`label=<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, name, value))
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%q", key, value))
		}
		sort.Strings(parts)
		desc.Vertices = append(desc.Vertices, dotVertex{Name: name, Attrs: strings.Join(parts, ", ")})

		children := make([]string, 0, len(adjacency[name]))
		for child := range adjacency[name] {
			children = append(children, child)
		}
		sort.Strings(children)
		for _, child := range children {
			desc.Edges = append(desc.Edges, dotEdge{From: name, To: child})
		}
	}

	return desc, nil
}
