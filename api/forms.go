package api

// FormField describes one input of a form the frontend renders.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Accept   string `json:"accept,omitempty"`
	Value    string `json:"value,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Form struct {
	Method  string      `json:"method"`
	Enctype string      `json:"enctype,omitempty"`
	Fields  []FormField `json:"fields"`
	Submit  string      `json:"submit"`
}

// FormResponse is returned by form views, and with status 400 when a
// submission has to be corrected.
type FormResponse struct {
	Form    Form    `json:"form"`
	Flashes []Flash `json:"flashes,omitempty"`
	IsAdmin bool    `json:"is_admin,omitempty"`
	HideNav bool    `json:"hide_nav,omitempty"`
}

func uploadForm(values, fieldErrors map[string]string) Form {
	return fillForm(Form{
		Method:  "POST",
		Enctype: "multipart/form-data",
		Fields: []FormField{
			{Name: "project_url", Label: "Enter Project URL", Type: "url", Required: true},
			{Name: "title", Label: "Project Title", Type: "text", Required: true},
			{Name: "description", Label: "Project Description", Type: "textarea", Required: true},
			{Name: "image", Label: "Project Image", Type: "file", Required: true, Accept: ".jpg,.jpeg,.png"},
		},
		Submit: "Submit Project",
	}, values, fieldErrors)
}

func contactForm(values, fieldErrors map[string]string) Form {
	return fillForm(Form{
		Method: "POST",
		Fields: []FormField{
			{Name: "name", Label: "Your Name", Type: "text", Required: true},
			{Name: "email", Label: "Your Email", Type: "email", Required: true},
			{Name: "message", Label: "Your Message", Type: "textarea", Required: true},
		},
		Submit: "Send Message",
	}, values, fieldErrors)
}

// fillForm echoes submitted values back, except file inputs, along with any
// per-field error.
func fillForm(form Form, values, fieldErrors map[string]string) Form {
	for i := range form.Fields {
		f := &form.Fields[i]
		if f.Type != "file" {
			f.Value = values[f.Name]
		}
		f.Error = fieldErrors[f.Name]
	}
	return form
}
