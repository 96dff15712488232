package templates

// Default returns the demo table: two static resources and two templates,
// tried in this order.
func Default(opts ...Option) *Set {
	s := NewSet(opts...)
	for _, r := range []Resource{
		{
			URI:         "docs://readme",
			Name:        "Project README",
			Description: "The project's README file",
			MIMEType:    "text/markdown",
			Text:        "# pathex\n\nExtract typed parameters from URI templates.\n",
		},
		{
			URI:         "file:///documents/report.pdf",
			Name:        "Quarterly Report",
			Description: "A sample binary document",
			MIMEType:    "application/pdf",
			Text:        "Quarterly report placeholder",
		},
	} {
		mustAdd(s.AddResource(r))
	}
	for _, t := range []Template{
		{
			Name:        "Dynamic Resource",
			URITemplate: "test://dynamic/resource/{id}",
			Description: "A resource addressed by numeric id",
			MIMEType:    "text/plain",
			Text:        "This is sample resource {id}",
			Types:       map[string]string{"id": "integer"},
		},
		{
			Name:        "Document",
			URITemplate: "file:///documents/{name}",
			Description: "A document addressed by file name",
			MIMEType:    "text/plain",
			Text:        "Contents of {name}",
		},
	} {
		mustAdd(s.AddTemplate(t))
	}
	return s
}

func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}
