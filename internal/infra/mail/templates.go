package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/maisonsia/bd-crm/internal/entity"
)

const requireLetterBody = `<html><body>
<h2>3-Month Follow-up Reminder</h2>
<p>Dear {{orNA .BDName}},</p>
<p>This is a reminder for your scheduled follow-up with:</p>
<ul>
	<li><strong>Client:</strong> {{orNA .ClientName}}</li>
	<li><strong>Architect:</strong> {{orNA .ArchitectName}}</li>
	<li><strong>Firm:</strong> {{orNA .FirmName}}</li>
	<li><strong>Lead ID:</strong> {{.LeadID}}</li>
</ul>
<p>Status: <strong>Letter Required - 3 Month Follow-up</strong></p>
<p>Please follow up with this lead regarding the letter request.</p>
</body></html>`

const catalogueFirstBody = `<html><body>
<h2>7-Day Follow-up Reminder</h2>
<p>Dear {{orNA .BDName}},</p>
<p>This is your first follow-up reminder for:</p>
<ul>
	<li><strong>Client:</strong> {{orNA .ClientName}}</li>
	<li><strong>Architect:</strong> {{orNA .ArchitectName}}</li>
	<li><strong>Mobile:</strong> {{orNA .ClientMobile}}</li>
	<li><strong>Lead ID:</strong> {{.LeadID}}</li>
</ul>
<p>Status: <strong>Catalogue Sent - First Follow-up</strong></p>
<p>Please call to confirm receipt and gather feedback.</p>
</body></html>`

const catalogueSecondBody = `<html><body>
<h2>Final Follow-up Reminder</h2>
<p>Dear {{orNA .BDName}},</p>
<p>This is your FINAL follow-up reminder for:</p>
<ul>
	<li><strong>Client:</strong> {{orNA .ClientName}}</li>
	<li><strong>Architect:</strong> {{orNA .ArchitectName}}</li>
	<li><strong>Lead ID:</strong> {{.LeadID}}</li>
</ul>
<p>Status: <strong>Catalogue Sent - FINAL Follow-up</strong></p>
<p><strong>This is the last automated reminder for this lead.</strong></p>
</body></html>`

const quotationBody = `<html><body>
<h2>Quotation Follow-up Reminder</h2>
<p>Dear {{orNA .BDName}},</p>
<p>This is your 15-day follow-up for:</p>
<ul>
	<li><strong>Client:</strong> {{orNA .ClientName}}</li>
	<li><strong>Architect:</strong> {{orNA .ArchitectName}}</li>
	<li><strong>Firm:</strong> {{orNA .FirmName}}</li>
	<li><strong>Mobile:</strong> {{orNA .ClientMobile}}</li>
	<li><strong>Lead ID:</strong> {{.LeadID}}</li>
</ul>
<p>Status: <strong>Quotation Sent - Recurring Follow-up</strong></p>
<p>Please follow up on the quotation status.</p>
</body></html>`

var templateFuncs = template.FuncMap{
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
}

var followUpTemplates = map[entity.FollowUpCategory]*template.Template{
	entity.FollowUpRequireLetter:   template.Must(template.New("require_letter").Funcs(templateFuncs).Parse(requireLetterBody)),
	entity.FollowUpCatalogueFirst:  template.Must(template.New("catalogue_first").Funcs(templateFuncs).Parse(catalogueFirstBody)),
	entity.FollowUpCatalogueSecond: template.Must(template.New("catalogue_second").Funcs(templateFuncs).Parse(catalogueSecondBody)),
	entity.FollowUpQuotation:       template.Must(template.New("quotation").Funcs(templateFuncs).Parse(quotationBody)),
}

func subjectFor(category entity.FollowUpCategory, data FollowUpData) string {
	who := data.ClientName
	if who == "" {
		who = data.ArchitectName
	}
	if who == "" {
		who = "Lead"
	}

	switch category {
	case entity.FollowUpRequireLetter:
		return fmt.Sprintf("Follow-up Required: %s - Letter Request", who)
	case entity.FollowUpCatalogueFirst:
		return fmt.Sprintf("Follow-up Call Required: %s - Catalogue Sent", who)
	case entity.FollowUpCatalogueSecond:
		return fmt.Sprintf("FINAL Follow-up: %s - Catalogue Interest", who)
	case entity.FollowUpQuotation:
		return fmt.Sprintf("15-Day Follow-up: %s - Quotation Sent", who)
	}
	return ""
}

// RenderFollowUp builds the subject and HTML body for one reminder category.
func RenderFollowUp(category entity.FollowUpCategory, data FollowUpData) (subject, body string, err error) {
	tmpl, ok := followUpTemplates[category]
	if !ok {
		return "", "", fmt.Errorf("invalid follow-up type: %s", category)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render follow-up template: %w", err)
	}

	return subjectFor(category, data), buf.String(), nil
}
