package scraper

// Record is one normalized grant/contribution agreement entry from the
// listing. All fields are kept as displayed; absence of markup for a field
// leaves it empty.
type Record struct {
	Agreement           string
	AgreementNumber     string
	DateRange           string
	DateAgreed          string
	Description         string
	Recipient           string
	RecipientPublicName string
	Price               string
	Location            string
}

// Fields returns the field values in output column order.
func (r *Record) Fields() []string {
	return []string{
		r.Agreement,
		r.AgreementNumber,
		r.DateRange,
		r.DateAgreed,
		r.Description,
		r.Recipient,
		r.RecipientPublicName,
		r.Price,
		r.Location,
	}
}

// Selectors describe where each record field lives in the listing markup.
// The listing carries no machine-readable attributes, so structural selectors
// are paired with label words as a text-matching fallback; markup drift is a
// selector config change, not a code change.
type Selectors struct {
	Item      string `yaml:"item"`
	Info      string `yaml:"info"`
	Generic   string `yaml:"generic"`
	Name      string `yaml:"name"`
	Price     string `yaml:"price"`
	DateCheck string `yaml:"date_check"`
	Paragraph string `yaml:"paragraph"`
	Labels    Labels `yaml:"labels"`
}

// Labels are the literal marker words that identify labeled blocks.
type Labels struct {
	AgreementNumber string `yaml:"agreement_number"`
	Description     string `yaml:"description"`
	Organization    string `yaml:"organization"`
	Duration        string `yaml:"duration"`
	Location        string `yaml:"location"`
}

// DefaultSelectors matches the search.open.canada.ca grants listing markup.
func DefaultSelectors() *Selectors {
	return &Selectors{
		Item:      "div.row.mrgn-bttm-xl.mrgn-lft-md",
		Info:      "div.col-sm-12.mrgn-tp-0",
		Generic:   "div.col-sm-12",
		Name:      "div.col-sm-8",
		Price:     "div.col-sm-4.text-right h4.mrgn-tp-0.mrgn-bttm-sm",
		DateCheck: "div.col-sm-4.text-right h5.mrgn-tp-0.mrgn-bttm-sm",
		Paragraph: "p",
		Labels: Labels{
			AgreementNumber: "Agreement Number",
			Description:     "Description",
			Organization:    "Organization",
			Duration:        "Duration",
			Location:        "Location",
		},
	}
}
