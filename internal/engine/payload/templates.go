package payload

// Template describes one content type for clients building forms.
type Template struct {
	Type     Type     `json:"type"`
	Label    string   `json:"label"`
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

var templates = map[Type]Template{
	TypeURL:   {Label: "Website", Required: []string{"url"}},
	TypeText:  {Label: "Plain text", Required: []string{"text"}},
	TypeEmail: {Label: "E-mail", Required: []string{"email"}, Optional: []string{"subject", "body"}},
	TypePhone: {Label: "Phone call", Required: []string{"number"}},
	TypeSMS:   {Label: "SMS", Required: []string{"number"}, Optional: []string{"message"}},
	TypeVCard: {
		Label:    "Contact (vCard)",
		Required: []string{"firstName", "lastName"},
		Optional: []string{
			"organization", "title", "workPhone", "homePhone", "mobilePhone", "workFax", "homeFax",
			"email", "website", "street", "city", "state", "zipCode", "country",
		},
	},
	TypeMeCard:   {Label: "Contact (MeCard)", Required: []string{"name"}, Optional: []string{"phone", "email", "website", "address"}},
	TypeLocation: {Label: "Location", Required: []string{"latitude", "longitude"}, Optional: []string{"name"}},
	TypeWiFi:     {Label: "Wi-Fi network", Required: []string{"ssid", "encryption"}, Optional: []string{"password", "hidden"}},
	TypeEvent:    {Label: "Calendar event", Required: []string{"title", "startDate"}, Optional: []string{"description", "location", "endDate", "allDay"}},
	TypeBitcoin:  {Label: "Bitcoin payment", Required: []string{"address"}, Optional: []string{"amount", "label", "message"}},
	TypeFacebook: {Label: "Facebook", Required: []string{"username"}},
	TypeTwitter:  {Label: "Twitter", Required: []string{"username"}},
	TypeYouTube:  {Label: "YouTube", Required: []string{"username"}},
}

// Templates lists every content type in display order.
func Templates() []Template {
	out := make([]Template, 0, len(allTypes))
	for _, t := range allTypes {
		tpl := templates[t]
		tpl.Type = t
		if tpl.Optional == nil {
			tpl.Optional = []string{}
		}
		out = append(out, tpl)
	}
	return out
}
