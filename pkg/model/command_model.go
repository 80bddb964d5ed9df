package model

// Command represents a single user edit intent received from an input
// adapter. It is a self-describing value, not a closure: the scope and
// operation select a handler and the arguments carry everything the handler
// needs to apply the edit. All scene mutation funnels through commands.
type Command struct {
	Scope     string   `json:"scope"`
	Operation string   `json:"operation"`
	Args      []string `json:"args"`
}
