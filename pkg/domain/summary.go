package domain

// SummaryColumns are the columns of a per-protein domain summary, the
// shape produced by the fetch and filter commands.
var SummaryColumns = []string{
	"ted_id",
	"chopping",
	"cath_label",
	"cath_assignment_level",
	"cath_assignment_method",
	"tax_common_name",
	"tax_scientific_name",
	"uniprot_acc",
}

// SummaryRow is one domain of a TED summary.
type SummaryRow struct {
	TedID                string `db:"ted_id"`
	Chopping             string `db:"chopping"`
	CathLabel            string `db:"cath_label"`
	CathAssignmentLevel  string `db:"cath_assignment_level"`
	CathAssignmentMethod string `db:"cath_assignment_method"`
	TaxCommonName        string `db:"tax_common_name"`
	TaxScientificName    string `db:"tax_scientific_name"`
	UniprotAcc           string `db:"uniprot_acc"`
}

// Values returns the fields in SummaryColumns order.
func (r SummaryRow) Values() []string {
	return []string{
		r.TedID,
		r.Chopping,
		r.CathLabel,
		r.CathAssignmentLevel,
		r.CathAssignmentMethod,
		r.TaxCommonName,
		r.TaxScientificName,
		r.UniprotAcc,
	}
}

// SummaryRowFromMap builds a row from a decoded record, deriving the
// accession from the TED identifier when it is missing.
func SummaryRowFromMap(m map[string]string) SummaryRow {
	res := SummaryRow{
		TedID:                m["ted_id"],
		Chopping:             m["chopping"],
		CathLabel:            m["cath_label"],
		CathAssignmentLevel:  m["cath_assignment_level"],
		CathAssignmentMethod: m["cath_assignment_method"],
		TaxCommonName:        m["tax_common_name"],
		TaxScientificName:    m["tax_scientific_name"],
		UniprotAcc:           m["uniprot_acc"],
	}
	if res.UniprotAcc == "" {
		res.UniprotAcc = AccessionFromTedID(res.TedID)
	}
	return res
}

// Entry is one decoded record of the TED API with its keys in document
// order.
type Entry struct {
	Keys   []string
	Values map[string]string
}

// Columns returns the union of entry keys in first-seen order.
func Columns(entries []Entry) []string {
	seen := make(map[string]struct{})
	var res []string
	for _, e := range entries {
		for _, k := range e.Keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			res = append(res, k)
		}
	}
	return res
}

// Row returns entry values in the order of the given columns, with empty
// strings for missing keys.
func (e Entry) Row(cols []string) []string {
	res := make([]string, len(cols))
	for i, c := range cols {
		res[i] = e.Values[c]
	}
	return res
}
