package viz

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid", "concentric"}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // one of ValidLayouts
	// ScriptURL is where the page loads Cytoscape.js from.
	ScriptURL string
}

// DefaultScriptURL serves Cytoscape.js from a CDN.
const DefaultScriptURL = "https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{Layout: "force", ScriptURL: DefaultScriptURL}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	ScriptURL string
	GraphJSON template.JS
	Layout    string
	Nodes     int
	Edges     int
}

// GenerateHTML generates a self-contained HTML page for the graph.
func GenerateHTML(g *GraphData, opts HTMLOptions) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}
	if opts.ScriptURL == "" {
		opts.ScriptURL = DefaultScriptURL
	}

	graphJSON, err := g.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	data := templateData{
		Title:     g.Title,
		ScriptURL: opts.ScriptURL,
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
		Nodes:     len(g.Nodes),
		Edges:     len(g.Edges),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering preview: %w", err)
	}
	return buf.String(), nil
}

// validateLayout checks if the layout option is valid.
func validateLayout(layout string) error {
	if layout == "" {
		return nil
	}
	for _, l := range ValidLayouts {
		if l == layout {
			return nil
		}
	}
	return fmt.Errorf("invalid layout %q: must be force, circle, grid, or concentric", layout)
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle", "grid", "concentric":
		return layout
	default:
		return "cose"
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="{{.ScriptURL}}"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      background: #1a1a2e;
    }
    #cy {
      width: 100%;
      height: 100vh;
    }
    #summary {
      position: absolute;
      top: 12px;
      left: 12px;
      color: #eee;
      font-size: 13px;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.3);
      font-size: 13px;
      pointer-events: none;
    }
    #tooltip .group {
      font-size: 10px;
      text-transform: uppercase;
      color: #888;
    }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="summary">{{.Title}}: {{.Nodes}} nodes, {{.Edges}} links</div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: {{.GraphJSON}},
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(color)',
              'label': 'data(name)',
              'color': '#eee',
              'font-size': '9px',
              'text-valign': 'bottom',
              'width': 'mapData(size, 0, 30, 6, 60)',
              'height': 'mapData(size, 0, 30, 6, 60)'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#555',
              'target-arrow-color': '#555',
              'target-arrow-shape': 'triangle',
              'curve-style': 'bezier',
              'opacity': 0.6,
              'width': 'mapData(weight, 1, 20, 1, 6)'
            }
          }
        ],
        layout: { name: "{{.Layout}}", animate: false }
      });

      const tooltip = document.getElementById('tooltip');
      cy.on('mouseover', 'node', function(evt) {
        const d = evt.target.data();
        tooltip.textContent = '';
        const group = document.createElement('div');
        group.className = 'group';
        group.textContent = d.group;
        const label = document.createElement('div');
        label.textContent = d.label;
        const degrees = document.createElement('div');
        degrees.textContent = 'in ' + d.inDegree + ' / out ' + d.outDegree;
        tooltip.append(group, label, degrees);
        const pos = evt.renderedPosition;
        tooltip.style.left = (pos.x + 12) + 'px';
        tooltip.style.top = (pos.y + 12) + 'px';
        tooltip.style.display = 'block';
      });
      cy.on('mouseout', 'node', function() {
        tooltip.style.display = 'none';
      });
    })();
  </script>
</body>
</html>`
