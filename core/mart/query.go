// core/mart/query.go
package mart

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// martservice query document, matching the service's expected shape:
// formatter=TSV with header=1 so the response carries its own schema, and
// uniqueRows delegated to the service.
type xmlQuery struct {
	XMLName              xml.Name   `xml:"Query"`
	VirtualSchemaName    string     `xml:"virtualSchemaName,attr"`
	Formatter            string     `xml:"formatter,attr"`
	Header               int        `xml:"header,attr"`
	UniqueRows           int        `xml:"uniqueRows,attr"`
	DatasetConfigVersion string     `xml:"datasetConfigVersion,attr"`
	Dataset              xmlDataset `xml:"Dataset"`
}

type xmlDataset struct {
	Name       string         `xml:"name,attr"`
	Interface  string         `xml:"interface,attr"`
	Filters    []xmlFilter    `xml:"Filter"`
	Attributes []xmlAttribute `xml:"Attribute"`
}

type xmlFilter struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlAttribute struct {
	Name string `xml:"name,attr"`
}

func buildQuery(dataset, filter string, ids, attributes []string) string {
	q := xmlQuery{
		VirtualSchemaName:    "default",
		Formatter:            "TSV",
		Header:               1,
		UniqueRows:           1,
		DatasetConfigVersion: "0.6",
		Dataset: xmlDataset{
			Name:      dataset,
			Interface: "default",
			Filters:   []xmlFilter{{Name: filter, Value: strings.Join(ids, ",")}},
		},
	}
	for _, a := range attributes {
		q.Dataset.Attributes = append(q.Dataset.Attributes, xmlAttribute{Name: a})
	}
	// Marshal of a static struct cannot fail.
	b, _ := xml.Marshal(q)
	return xml.Header + "<!DOCTYPE Query>" + string(b)
}

// BioMart reports query faults in-band: a 200 response whose body opens with
// an error marker instead of TSV.
const errorMarker = "Query ERROR"

// parseTSV reads a header+rows TSV response into a Table. An empty body is
// an empty Table (no matches, no schema).
func parseTSV(r io.Reader) (Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var t Table
	for sc.Scan() {
		line := sc.Text()
		if t.Columns == nil {
			if strings.HasPrefix(line, errorMarker) {
				return Table{}, fmt.Errorf("mart: %s", strings.TrimSpace(line))
			}
			if line == "" {
				continue
			}
			t.Columns = strings.Split(line, "\t")
			continue
		}
		if line == "" {
			continue
		}
		t.Rows = append(t.Rows, strings.Split(line, "\t"))
	}
	if err := sc.Err(); err != nil {
		return Table{}, fmt.Errorf("mart: read response: %w", err)
	}
	return t, nil
}
