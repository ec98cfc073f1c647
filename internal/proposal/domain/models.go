package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Badge is a certification or award displayed on the title page.
type Badge struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Contractor identifies the business issuing the proposal.
type Contractor struct {
	Name    string  `json:"name"`
	Logo    string  `json:"logo,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Email   string  `json:"email,omitempty"`
	Address string  `json:"address,omitempty"`
	License string  `json:"license,omitempty"`
	Badges  []Badge `json:"badges,omitempty"`
}

// Homeowner identifies the party the proposal is prepared for.
type Homeowner struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// TitlePage is the cover of the proposal document.
type TitlePage struct {
	Contractor    Contractor `json:"contractor"`
	Homeowner     Homeowner  `json:"homeowner"`
	Date          string     `json:"date"`
	PropertyImage string     `json:"propertyImage,omitempty"`
	ProjectTitle  string     `json:"projectTitle,omitempty"`
}

// IntroPage holds the introduction letter. Paragraphs are separated by a
// blank line in Content.
type IntroPage struct {
	Content        string `json:"content"`
	Signature      string `json:"signature,omitempty"`
	ContractorName string `json:"contractorName,omitempty"`
}

// Photo is a single captioned site photo.
type Photo struct {
	URL       string `json:"url"`
	Caption   string `json:"caption"`
	Timestamp string `json:"timestamp,omitempty"`
}

// PhotoSection groups an ordered run of photos under a heading.
type PhotoSection struct {
	Title  string  `json:"title"`
	Photos []Photo `json:"photos"`
}

// LineItem is one priced work item within an estimate.
//
// When both Quantity and UnitPrice are set, Total is derived as
// quantity * unit price. When either is absent, Total is a manually
// supplied amount and is left alone by recomputation.
type LineItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	Total       float64  `json:"total"`
	Notes       string   `json:"notes,omitempty"`
}

// Estimate is one priced package option within a proposal.
//
// Subtotal and Total are derived: Subtotal is the sum of line item totals
// and Total adds Tax (0 when absent). Every mutation touching LineItems or
// Tax re-establishes both before the document is committed.
type Estimate struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	LineItems   []LineItem `json:"lineItems"`
	Subtotal    float64    `json:"subtotal"`
	Tax         *float64   `json:"tax,omitempty"`
	Total       float64    `json:"total"`
	Notes       string     `json:"notes,omitempty"`
}

// AddOn is an optional flat-priced extra a homeowner may select alongside
// an estimate.
type AddOn struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// AttachmentType categorizes a file attachment.
type AttachmentType string

const (
	AttachmentBrochure AttachmentType = "brochure"
	AttachmentWarranty AttachmentType = "warranty"
	AttachmentTerms    AttachmentType = "terms"
	AttachmentOther    AttachmentType = "other"
)

// FileAttachment references a supporting document. When EmbedContent is
// set, Pages holds an ordered list of page-image references rendered
// inline by the presentation layer.
type FileAttachment struct {
	Name         string         `json:"name"`
	URL          string         `json:"url"`
	Type         AttachmentType `json:"type"`
	Size         string         `json:"size,omitempty"`
	EmbedContent bool           `json:"embedContent,omitempty"`
	Pages        []string       `json:"pdfPages,omitempty"`
}

// Document is the proposal content owned by one Proposal row. All nested
// entities are owned by value; collections are order-significant.
type Document struct {
	TitlePage     TitlePage        `json:"titlePage"`
	IntroPage     IntroPage        `json:"introPage"`
	PhotoSections []PhotoSection   `json:"photoSections"`
	Estimates     []Estimate       `json:"estimates"`
	AddOns        []AddOn          `json:"addOns,omitempty"`
	Attachments   []FileAttachment `json:"attachments,omitempty"`
}

// Proposal is the persisted root aggregate.
type Proposal struct {
	ID        snowflake.ID                 `gorm:"primaryKey" json:"id"`
	Document  datatypes.JSONType[Document] `gorm:"not null" json:"document"`
	CreatedAt time.Time                    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time                    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Proposal) TableName() string { return "proposals" }
