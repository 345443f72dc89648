package sparql

// Namespaces used by the Rhea RDF graph.
const (
	RheaNamespace   = "http://rdf.rhea-db.org/"
	EnzymeNamespace = "http://purl.uniprot.org/enzyme/"
	PubMedNamespace = "http://rdf.ncbi.nlm.nih.gov/pubmed/"

	PrefixRhea   = "PREFIX rh:<" + RheaNamespace + ">"
	PrefixEnzyme = "PREFIX EC:<" + EnzymeNamespace + ">"
)

// ResultsFormat is the MIME type requested from the endpoint.
const ResultsFormat = "application/sparql-results+json"

// Term is a single RDF term bound to a variable.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Binding maps variable names to the terms bound in one solution.
type Binding map[string]Term

// Lookup returns the value bound to name and whether it was bound.
func (b Binding) Lookup(name string) (string, bool) {
	t, ok := b[name]
	if !ok {
		return "", false
	}
	return t.Value, true
}

// Value returns the value bound to name, or "" when unbound.
func (b Binding) Value(name string) string {
	v, _ := b.Lookup(name)
	return v
}

// Response is the standard SPARQL 1.1 JSON results document.
type Response struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}
