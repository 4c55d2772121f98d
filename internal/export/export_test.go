package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhimmel/disease-ontology/internal/graph"
	"github.com/dhimmel/disease-ontology/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleGraph(t *testing.T) *graph.MultiDiGraph {
	t.Helper()
	g := graph.New()
	g.AddNode(term.New("DOID:9351", term.WithName("diabetes mellitus"), term.WithSynonyms("diabetes")))
	g.AddNode(term.New("DOID:4", term.WithName("disease"), term.WithXrefs("MESH:D004194")))
	require.NoError(t, g.AddEdge("DOID:9351", "DOID:4", term.IsA))
	require.NoError(t, g.AddEdge("DOID:9351", "DOID:4", "part_of"))
	return g
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "JSON", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				assert.ErrorContains(t, err, "unsupported export format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleGraph(t), FormatJSON))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "DOID:4", doc.Nodes[0].ID)
	assert.Equal(t, []string{"MESH:D004194"}, doc.Nodes[0].Xrefs)
	assert.Equal(t, []string{"diabetes"}, doc.Nodes[1].Synonyms)
	assert.Equal(t, []graph.Edge{
		{From: "DOID:9351", To: "DOID:4", Key: term.IsA},
		{From: "DOID:9351", To: "DOID:4", Key: "part_of"},
	}, doc.Edges)
	assert.Contains(t, buf.String(), `"source": "DOID:9351"`)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleGraph(t), FormatYAML))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Nodes, 2)
	assert.Len(t, doc.Edges, 2)
	assert.Contains(t, buf.String(), "type: part_of")
}

func TestWrite_EmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, graph.New(), FormatJSON))
	assert.JSONEq(t, `{"nodes": [], "edges": []}`, buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, graph.New(), Format("xml")))
}
