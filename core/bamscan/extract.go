// core/bamscan/extract.go
package bamscan

import (
	"strings"

	"github.com/biogo/hts/sam"
)

// Extractor derives zero or one identifier from an alignment record.
// Absence (ok=false) is a normal outcome for unmapped reads and reads
// without a usable annotation, never an error.
type Extractor interface {
	Extract(rec *sam.Record) (id string, ok bool)
}

// RefName emits a mapped read's reference name verbatim. This is the
// transcript-level strategy: alignments against a transcriptome carry the
// transcript accession as the reference name.
type RefName struct{}

func (RefName) Extract(rec *sam.Record) (string, bool) {
	if rec.Flags&sam.Unmapped != 0 || rec.Ref == nil {
		return "", false
	}
	name := rec.Ref.Name()
	if name == "" {
		return "", false
	}
	return name, true
}

// Gene-level defaults: aligners that annotate reads with gene IDs use these
// aux tags, probed in this order.
const DefaultGenePrefix = "ENSG"

func DefaultGeneTags() []string { return []string{"GX", "GE", "GN"} }

// TagPrefix probes a read's aux tags in priority order and emits the first
// string value carrying the accession prefix. Missing tags and non-string
// values are silent non-matches.
type TagPrefix struct {
	Tags   []string // probe order, first match wins; each must be two bytes
	Prefix string
}

func (t TagPrefix) Extract(rec *sam.Record) (string, bool) {
	if rec.Flags&sam.Unmapped != 0 {
		return "", false
	}
	for _, tag := range t.Tags {
		if len(tag) != 2 {
			continue
		}
		aux := rec.AuxFields.Get(sam.Tag{tag[0], tag[1]})
		if aux == nil {
			continue
		}
		v, ok := aux.Value().(string)
		if !ok || v == "" || !strings.HasPrefix(v, t.Prefix) {
			continue
		}
		return v, true
	}
	return "", false
}
