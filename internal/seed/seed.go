package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/robmoran/proposalkit/internal/events"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureSampleProposal seeds one complete roofing proposal when the
// proposals table is empty, so a fresh session has a document to edit.
func EnsureSampleProposal(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&proposaldomain.Proposal{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		row := proposaldomain.Proposal{
			ID:        node.Generate(),
			Document:  datatypes.NewJSONType(sampleDocument(node)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		outbox := events.NewOutbox(db, node)
		return outbox.PublishTx(ctx, tx, events.Event{
			ProposalID: row.ID,
			Type:       events.EventProposalSeeded,
			Payload:    map[string]any{"proposal_id": row.ID.String()},
		})
	})
}

func sampleDocument(node *snowflake.Node) proposaldomain.Document {
	return proposaldomain.Document{
		TitlePage: proposaldomain.TitlePage{
			Contractor: proposaldomain.Contractor{
				Name:    "Summit Roofing & Construction",
				Phone:   "(555) 123-4567",
				Email:   "info@summitroofing.com",
				Address: "123 Contractor Ave, Builder City, ST 12345",
				License: "Licensed CCB #198472",
				Badges: []proposaldomain.Badge{
					{Name: "Owens Corning Preferred Contractor", ImageURL: "https://images.example.com/badges/oc-preferred.jpg"},
					{Name: "Women's Choice Award", ImageURL: "https://images.example.com/badges/womens-choice.jpg"},
				},
			},
			Homeowner: proposaldomain.Homeowner{
				Name:    "John & Sarah Smith",
				Address: "456 Homeowner Lane, Neighborhood, ST 12345",
				Phone:   "(555) 987-6543",
				Email:   "smithfamily@email.com",
			},
			Date:          "2025-12-19",
			ProjectTitle:  "Complete Roof Replacement",
			PropertyImage: "https://images.example.com/properties/456-homeowner-lane.jpg",
		},
		IntroPage: proposaldomain.IntroPage{
			Content: "Dear John & Sarah,\n\n" +
				"Thank you for the opportunity to provide you with this comprehensive proposal for your roofing project. We pride ourselves on delivering exceptional quality and customer service that has made us a trusted name in the community for over 25 years.\n\n" +
				"Our team has carefully inspected your property and identified the scope of work needed to provide you with a beautiful, durable roof that will protect your home for decades to come. We've included multiple options in this proposal to give you flexibility in choosing the solution that best fits your needs and budget.\n\n" +
				"If you have any questions about this proposal or would like to discuss any aspect of the project, please don't hesitate to reach out. We look forward to the opportunity to work with you.",
			ContractorName: "Michael Johnson, Owner",
		},
		PhotoSections: []proposaldomain.PhotoSection{
			{
				Title: "Site Photography",
				Photos: []proposaldomain.Photo{
					{URL: "https://images.example.com/site/front-elevation.jpg", Caption: "Front elevation showing existing shingle condition", Timestamp: "2025-12-15"},
					{URL: "https://images.example.com/site/shingle-damage.jpg", Caption: "Close-up of damaged shingles and granule loss", Timestamp: "2025-12-15"},
					{URL: "https://images.example.com/site/rear-roof.jpg", Caption: "Rear roof section with visible wear", Timestamp: "2025-12-15"},
					{URL: "https://images.example.com/site/chimney-flashing.jpg", Caption: "Chimney flashing requiring replacement", Timestamp: "2025-12-15"},
				},
			},
		},
		Estimates: []proposaldomain.Estimate{
			premiumEstimate(node.Generate().String()),
			standardEstimate(node.Generate().String()),
		},
		AddOns: []proposaldomain.AddOn{
			{ID: node.Generate().String(), Name: "Gutter Guard Protection", Description: "Micro-mesh gutter guards on all gutters to keep debris out", Price: 1200},
			{ID: node.Generate().String(), Name: "Attic Insulation Upgrade", Description: "Blow-in insulation topped up to R-49 across the attic floor", Price: 1850},
			{ID: node.Generate().String(), Name: "Skylight Replacement", Description: "Replace the existing hallway skylight with a curb-mounted unit", Price: 2400},
		},
		Attachments: []proposaldomain.FileAttachment{
			{
				Name:         "Owens Corning Product Brochure.pdf",
				URL:          "#",
				Type:         proposaldomain.AttachmentBrochure,
				Size:         "5.2 MB",
				EmbedContent: true,
				Pages: []string{
					"https://images.example.com/brochure/page-1.jpg",
					"https://images.example.com/brochure/page-2.jpg",
					"https://images.example.com/brochure/page-3.jpg",
				},
			},
			{Name: "GAF System Plus Warranty Information.pdf", URL: "#", Type: proposaldomain.AttachmentWarranty, Size: "856 KB"},
			{Name: "Summit Roofing Terms and Conditions.pdf", URL: "#", Type: proposaldomain.AttachmentTerms, Size: "124 KB"},
			{Name: "Roof Maintenance Guide.pdf", URL: "#", Type: proposaldomain.AttachmentOther, Size: "1.8 MB"},
		},
	}
}

func premiumEstimate(id string) proposaldomain.Estimate {
	items := []proposaldomain.LineItem{
		{Description: "Remove existing roofing materials down to deck", Quantity: f(2400), Unit: "sq ft", UnitPrice: f(1.50), Total: 3600, Notes: "Including proper disposal and site cleanup"},
		{Description: "Inspect and repair roof decking as needed", Quantity: f(1), Unit: "allowance", Total: 800, Notes: "Material and labor for deck repairs"},
		{Description: "Install ice & water shield at eaves and valleys", Quantity: f(300), Unit: "sq ft", UnitPrice: f(2.50), Total: 750},
		{Description: "Install synthetic underlayment (entire roof)", Quantity: f(2400), Unit: "sq ft", UnitPrice: f(0.85), Total: 2040},
		{Description: "Install GAF Timberline HDZ architectural shingles", Quantity: f(26), Unit: "squares", UnitPrice: f(320), Total: 8320, Notes: "Charcoal color, 50-year warranty"},
		{Description: "Install new roof vents and ridge venting", Quantity: f(1), Unit: "lot", Total: 1200, Notes: "Includes all necessary ventilation components"},
		{Description: "Install new aluminum drip edge", Quantity: f(180), Unit: "ft", UnitPrice: f(4.50), Total: 810},
		{Description: "Replace step and counter flashing", Quantity: f(60), Unit: "ft", UnitPrice: f(12), Total: 720},
		{Description: "Install new pipe boot flashings", Quantity: f(4), Unit: "ea", UnitPrice: f(85), Total: 340},
		{Description: "Clean and seal chimney flashing", Quantity: f(1), Unit: "ea", Total: 450},
	}
	tax := 1522.40
	subtotal, total := proposaldomain.EstimateTotals(items, &tax)
	return proposaldomain.Estimate{
		ID:          id,
		Title:       "Premium Option - Architectural Shingles",
		Description: "High-quality architectural shingles with enhanced warranty and superior aesthetics",
		LineItems:   items,
		Subtotal:    subtotal,
		Tax:         &tax,
		Total:       total,
		Notes:       "Includes a 50-year material warranty from GAF and a 10-year labor warranty. Project timeline: 3-4 days weather permitting. Price valid for 30 days.",
	}
}

func standardEstimate(id string) proposaldomain.Estimate {
	items := []proposaldomain.LineItem{
		{Description: "Remove existing roofing materials down to deck", Quantity: f(2400), Unit: "sq ft", UnitPrice: f(1.50), Total: 3600, Notes: "Including proper disposal and site cleanup"},
		{Description: "Inspect and repair roof decking as needed", Quantity: f(1), Unit: "allowance", Total: 800},
		{Description: "Install ice & water shield at eaves and valleys", Quantity: f(300), Unit: "sq ft", UnitPrice: f(2.50), Total: 750},
		{Description: "Install #30 felt underlayment (entire roof)", Quantity: f(2400), Unit: "sq ft", UnitPrice: f(0.45), Total: 1080},
		{Description: "Install GAF Royal Sovereign 3-tab shingles", Quantity: f(26), Unit: "squares", UnitPrice: f(220), Total: 5720, Notes: "Charcoal color, 25-year warranty"},
		{Description: "Install new roof vents and ridge venting", Quantity: f(1), Unit: "lot", Total: 1200},
		{Description: "Install new aluminum drip edge", Quantity: f(180), Unit: "ft", UnitPrice: f(4.50), Total: 810},
		{Description: "Replace step and counter flashing", Quantity: f(60), Unit: "ft", UnitPrice: f(12), Total: 720},
		{Description: "Install new pipe boot flashings", Quantity: f(4), Unit: "ea", UnitPrice: f(85), Total: 340},
		{Description: "Clean and seal chimney flashing", Quantity: f(1), Unit: "ea", Total: 450},
	}
	tax := 1237.60
	subtotal, total := proposaldomain.EstimateTotals(items, &tax)
	return proposaldomain.Estimate{
		ID:          id,
		Title:       "Standard Option - 3-Tab Shingles",
		Description: "Quality 3-tab shingles offering reliable protection at an economical price point",
		LineItems:   items,
		Subtotal:    subtotal,
		Tax:         &tax,
		Total:       total,
		Notes:       "Includes a 25-year material warranty from GAF and a 10-year labor warranty. Project timeline: 3-4 days weather permitting. Price valid for 30 days.",
	}
}

func f(v float64) *float64 { return &v }
