package registry

type PathwayRegistry struct {
	Version     string              `json:"version"`
	LastUpdated string              `json:"lastUpdated"`
	Pathways    []PathwayDefinition `json:"pathways"`
}

// PathwayDefinition describes how a user selects an applicant pathway. The intake schema
// for each pathway is bound in code by ID.
type PathwayDefinition struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	UserType    string   `json:"userType"`
	Indicator   string   `json:"indicator"`
	Tags        []string `json:"tags,omitempty"`
}
