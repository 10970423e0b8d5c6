package handlers

// Action is the closed set of operations of the action endpoint
type Action string

const (
	ActionListFiles           Action = "list-files"
	ActionGenerateUploadURL   Action = "generate-upload-url"
	ActionGenerateDownloadURL Action = "generate-download-url"
)

// ParseAction maps a request value onto a known Action
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionListFiles, ActionGenerateUploadURL, ActionGenerateDownloadURL:
		return a, true
	}
	return "", false
}
