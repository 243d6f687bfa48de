package enquiry

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Enquiry is a quote request for a product, or a general contact message
// when ProductName is empty.
type Enquiry struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Quantity     int       `json:"quantity"`
	Message      string    `json:"message,omitempty"`
	Source       string    `json:"source,omitempty"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductBrand string    `json:"product_brand,omitempty"`
	PageURL      string    `json:"page_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
)

const maxMessageLength = 4000

// ValidationError lists the offending fields with a message each.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	return "invalid enquiry: " + strings.Join(parts, ", ")
}

func (e *Enquiry) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Message = strings.TrimSpace(e.Message)
	e.Source = strings.TrimSpace(e.Source)
	e.ProductName = strings.TrimSpace(e.ProductName)
	e.ProductBrand = strings.TrimSpace(e.ProductBrand)
	if e.ProductName == "N/A" {
		e.ProductName = ""
	}
	if e.Quantity == 0 {
		e.Quantity = 1
	}
}

func (e *Enquiry) Validate() error {
	fields := map[string]string{}
	if e.Name == "" {
		fields["name"] = "required"
	}
	if e.Email == "" {
		fields["email"] = "required"
	} else if !emailPattern.MatchString(e.Email) {
		fields["email"] = "not a valid email"
	}
	if e.Phone == "" {
		fields["phone"] = "required"
	} else if !phonePattern.MatchString(phoneStrip.Replace(e.Phone)) {
		fields["phone"] = "not a valid phone number"
	}
	if e.Quantity < 1 {
		fields["quantity"] = "must be at least 1"
	}
	if e.ProductName == "" && e.Message == "" {
		fields["message"] = "required when no product is given"
	}
	if utf8.RuneCountInString(e.Message) > maxMessageLength {
		fields["message"] = "too long"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (e *Enquiry) Subject() string {
	if e.ProductName == "" {
		return "Enquiry from " + e.Name
	}
	return fmt.Sprintf("Enquiry: %s (%d)", e.ProductName, e.Quantity)
}

func (e *Enquiry) PlainText() string {
	var sb strings.Builder
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%s: %s\n", label, value)
		}
	}
	line("Reference", e.Id)
	line("Name", e.Name)
	line("Email", e.Email)
	line("Phone", e.Phone)
	line("Product", strings.TrimSpace(e.ProductBrand+" "+e.ProductName))
	line("Quantity", fmt.Sprint(e.Quantity))
	line("Found us via", e.Source)
	line("Page", e.PageURL)
	if e.Message != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}
