package domain

import (
	"fmt"
	"strings"
)

// ClientStatus is the sales pipeline stage of a client.
type ClientStatus string

const (
	ClientLead          ClientStatus = "lead"
	ClientDrop          ClientStatus = "drop"
	ClientOnboard       ClientStatus = "onboard"
	ClientQuotation     ClientStatus = "quotation"
	ClientInProgress    ClientStatus = "inprogress"
	ClientNotInterested ClientStatus = "notinterested"
	ClientNone          ClientStatus = "none"
)

// ClientStatuses lists every status in display order.
var ClientStatuses = []ClientStatus{
	ClientLead, ClientDrop, ClientOnboard, ClientQuotation,
	ClientInProgress, ClientNotInterested, ClientNone,
}

var clientStatusLabels = map[ClientStatus]string{
	ClientLead:          "Lead",
	ClientDrop:          "Drop",
	ClientOnboard:       "Onboard",
	ClientQuotation:     "Quotation",
	ClientInProgress:    "In Progress",
	ClientNotInterested: "Not Interested",
	ClientNone:          "None",
}

// ParseClientStatus normalizes s, ignoring case and whitespace.
// "notinterest" is accepted for notinterested.
func ParseClientStatus(s string) (ClientStatus, error) {
	compact := strings.Join(strings.Fields(strings.ToLower(s)), "")
	if compact == "notinterest" {
		return ClientNotInterested, nil
	}
	status := ClientStatus(compact)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidClientStatus, s)
	}
	return status, nil
}

// IsValid reports whether s is one of ClientStatuses.
func (s ClientStatus) IsValid() bool {
	_, ok := clientStatusLabels[s]
	return ok
}

func (s ClientStatus) String() string {
	return string(s)
}

// Label returns the human readable status.
func (s ClientStatus) Label() string {
	if l, ok := clientStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Next returns the status after s in ClientStatuses, wrapping around.
func (s ClientStatus) Next() ClientStatus {
	for i, st := range ClientStatuses {
		if st == s {
			return ClientStatuses[(i+1)%len(ClientStatuses)]
		}
	}
	return ClientStatuses[0]
}

// Client is a customer tracked in the local client book.
type Client struct {
	ID              string       `toml:"id" json:"id"`
	CustomerID      string       `toml:"customer_id" json:"customerId"`
	CompanyName     string       `toml:"company_name" json:"companyName"`
	CustomerName    string       `toml:"customer_name" json:"customerName"`
	CreatedDate     string       `toml:"created_date" json:"createdDate"`
	IndustrySegment string       `toml:"industry_segment" json:"industrySegment"`
	ManufacturersOf string       `toml:"manufacturers_of" json:"manufacturersOf"`
	Reference       string       `toml:"reference" json:"reference"`
	RepeatedClient  string       `toml:"repeated_client" json:"repeatedClient"`
	ContactPerson   string       `toml:"contact_person" json:"contactPerson"`
	GSTNo           string       `toml:"gst_no" json:"gstNo"`
	PhoneNo         string       `toml:"phone_no" json:"phoneNo"`
	MailID          string       `toml:"mail_id" json:"mailId"`
	Address         string       `toml:"address" json:"address"`
	Status          ClientStatus `toml:"status" json:"status"`
}

// Validate checks the required client fields.
func (c Client) Validate() error {
	required := []struct {
		name, value string
	}{
		{"customer id", c.CustomerID},
		{"company name", c.CompanyName},
		{"customer name", c.CustomerName},
		{"phone number", c.PhoneNo},
		{"mail id", c.MailID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, r.name)
		}
	}
	return nil
}

// WithDefaults fills empty optional fields with N/A and an empty status with none.
func (c Client) WithDefaults() Client {
	for _, p := range []*string{
		&c.IndustrySegment, &c.ManufacturersOf, &c.Reference,
		&c.ContactPerson, &c.GSTNo, &c.Address,
	} {
		if strings.TrimSpace(*p) == "" {
			*p = NotAvailable
		}
	}
	if c.Status == "" {
		c.Status = ClientNone
	}
	return c
}
