package seo

// DocumentGenerator produces the finished HTML and canonical slug for
// one decoded JSON document. Batch orchestration written against this
// interface can mix document pipelines without knowing their concrete
// types; tests can substitute a stub.
type DocumentGenerator interface {
	GenerateHTML(item map[string]any) (html string, slug string, err error)
}
