package cli

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Examples  []string
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "document",
		Operation: "new",
		ShortDesc: "Create a new document",
		LongDesc:  "Creates a new empty canvas document with the specified name and selects it.",
		Syntax:    "document new <document_name>",
		Arguments: []string{"document_name: The name of the new document"},
		Examples:  []string{"document new sprint_board"},
	},
	{
		Scope:     "document",
		Operation: "open",
		ShortDesc: "Open an existing document",
		LongDesc:  "Opens a stored document by name or id, restoring its full scene and undo history.",
		Syntax:    "document open <document_name>",
		Arguments: []string{"document_name: The name or id of the document to open"},
		Examples:  []string{"document open sprint_board"},
	},
	{
		Scope:     "document",
		Operation: "save",
		ShortDesc: "Save the current document",
		LongDesc:  "Persists the current document, including its undo history, to the database.",
		Syntax:    "document save",
		Examples:  []string{"document save"},
	},
	{
		Scope:     "document",
		Operation: "list",
		ShortDesc: "List stored documents",
		LongDesc:  "Displays all documents in the database with their last update time.",
		Syntax:    "document list",
		Examples:  []string{"document list"},
	},
	{
		Scope:     "document",
		Operation: "delete",
		ShortDesc: "Delete a document",
		LongDesc:  "Deletes the specified document, or the currently open one if no name is given.",
		Syntax:    "document delete [document_name]",
		Arguments: []string{"document_name: (Optional) The name of the document to delete"},
		Examples:  []string{"document delete", "document delete sprint_board"},
	},
	{
		Scope:     "document",
		Operation: "export",
		ShortDesc: "Export the current document to a file",
		LongDesc:  "Writes the current document, including its undo history, to a portable JSON file.",
		Syntax:    "document export <filename> [json]",
		Arguments: []string{"filename: The name of the file to save to", "format: (Optional) Only 'json' is supported"},
		Examples:  []string{"document export board.json"},
	},
	{
		Scope:     "document",
		Operation: "import",
		ShortDesc: "Import a document from a file",
		LongDesc:  "Reads a portable JSON file and stores it as a document under the given name, replacing any document with the same name.",
		Syntax:    "document import <document_name> <filename> [json]",
		Arguments: []string{"document_name: The name for the imported document", "filename: The file to import from", "format: (Optional) Only 'json' is supported"},
		Examples:  []string{"document import board board.json"},
	},
	{
		Scope:     "node",
		Operation: "add",
		ShortDesc: "Add a note or code node",
		LongDesc:  "Adds a new node to the canvas. With explicit coordinates the node lands exactly there; otherwise a free spot near the viewport center is picked.",
		Syntax:    "node add <note|code> [x y] [content]",
		Arguments: []string{"kind: 'note' or 'code'", "x, y: (Optional) World coordinates", "content: (Optional) Initial text content"},
		Examples:  []string{"node add note", "node add note 100 200 \"design ideas\"", "node add code 0 0 \"func main() {}\""},
	},
	{
		Scope:     "node",
		Operation: "move",
		ShortDesc: "Move a node",
		LongDesc:  "Repositions an existing node to the given world coordinates.",
		Syntax:    "node move <node_id> <x> <y>",
		Arguments: []string{"node_id: The id of the node to move", "x, y: The new position"},
		Examples:  []string{"node move 1 250 -80"},
	},
	{
		Scope:     "node",
		Operation: "edit",
		ShortDesc: "Edit node content",
		LongDesc:  "Replaces the text content of an existing node.",
		Syntax:    "node edit <node_id> [content]",
		Arguments: []string{"node_id: The id of the node to edit", "content: The new content"},
		Examples:  []string{"node edit 1 \"updated notes\""},
	},
	{
		Scope:     "node",
		Operation: "delete",
		ShortDesc: "Delete a node",
		LongDesc:  "Deletes a node and every arrow attached to it in one step.",
		Syntax:    "node delete <node_id>",
		Arguments: []string{"node_id: The id of the node to delete"},
		Examples:  []string{"node delete 1"},
	},
	{
		Scope:     "node",
		Operation: "get",
		ShortDesc: "Show a node",
		LongDesc:  "Displays a single node with its kind, position, size, and content.",
		Syntax:    "node get <node_id>",
		Arguments: []string{"node_id: The id of the node to show"},
		Examples:  []string{"node get 1"},
	},
	{
		Scope:     "node",
		Operation: "list",
		ShortDesc: "List nodes",
		LongDesc:  "Lists all nodes, or only those intersecting the given region.",
		Syntax:    "node list [x y w h]",
		Arguments: []string{"x, y, w, h: (Optional) Region to restrict the listing to"},
		Examples:  []string{"node list", "node list 0 0 500 500"},
	},
	{
		Scope:     "arrow",
		Operation: "add",
		ShortDesc: "Connect two nodes",
		LongDesc:  "Creates an arrow from one node to another. Both nodes must exist and differ.",
		Syntax:    "arrow add <from_node_id> <to_node_id> [curvature]",
		Arguments: []string{"from_node_id: The source node", "to_node_id: The target node", "curvature: (Optional) Bend of the arrow, 0 for straight"},
		Examples:  []string{"arrow add 1 2", "arrow add 2 3 0.5"},
	},
	{
		Scope:     "arrow",
		Operation: "delete",
		ShortDesc: "Delete an arrow",
		LongDesc:  "Deletes an arrow by id. The connected nodes are untouched.",
		Syntax:    "arrow delete <arrow_id>",
		Arguments: []string{"arrow_id: The id of the arrow to delete"},
		Examples:  []string{"arrow delete 1"},
	},
	{
		Scope:     "arrow",
		Operation: "list",
		ShortDesc: "List arrows",
		LongDesc:  "Lists all arrows with their endpoints.",
		Syntax:    "arrow list",
		Examples:  []string{"arrow list"},
	},
	{
		Scope:     "stroke",
		Operation: "add",
		ShortDesc: "Start a marker stroke",
		LongDesc:  "Starts a freehand marker stroke at the given point. Extend it with 'stroke point'.",
		Syntax:    "stroke add <color> <width> <x> <y>",
		Arguments: []string{"color: Stroke color, e.g. '#ff0000'", "width: Stroke width in world units", "x, y: The first point"},
		Examples:  []string{"stroke add #ff0000 2.5 100 100"},
	},
	{
		Scope:     "stroke",
		Operation: "point",
		ShortDesc: "Extend a stroke",
		LongDesc:  "Appends a point to an existing stroke.",
		Syntax:    "stroke point <stroke_id> <x> <y>",
		Arguments: []string{"stroke_id: The stroke to extend", "x, y: The next point"},
		Examples:  []string{"stroke point 1 120 110"},
	},
	{
		Scope:     "stroke",
		Operation: "erase",
		ShortDesc: "Erase strokes",
		LongDesc:  "Removes every stroke with at least one point within the radius of the given point. Undo restores them.",
		Syntax:    "stroke erase <x> <y> <radius>",
		Arguments: []string{"x, y: Center of the eraser", "radius: Eraser radius in world units"},
		Examples:  []string{"stroke erase 110 105 20"},
	},
	{
		Scope:     "stroke",
		Operation: "list",
		ShortDesc: "List strokes",
		LongDesc:  "Lists all strokes with their color, width, and point count.",
		Syntax:    "stroke list",
		Examples:  []string{"stroke list"},
	},
	{
		Scope:     "view",
		Operation: "pan",
		ShortDesc: "Pan the viewport",
		LongDesc:  "Shifts the viewport by the given offset. Viewport changes are not undoable.",
		Syntax:    "view pan <dx> <dy>",
		Arguments: []string{"dx, dy: Offset to add to the current pan"},
		Examples:  []string{"view pan 200 0"},
	},
	{
		Scope:     "view",
		Operation: "zoom",
		ShortDesc: "Zoom the viewport",
		LongDesc:  "Multiplies the current zoom by the given factor, clamped to the supported range.",
		Syntax:    "view zoom <factor>",
		Arguments: []string{"factor: Zoom multiplier, e.g. 1.25 to zoom in"},
		Examples:  []string{"view zoom 1.25", "view zoom 0.8"},
	},
	{
		Scope:     "view",
		Operation: "show",
		ShortDesc: "Show the visible scene",
		LongDesc:  "Displays everything visible in the current viewport, or in an explicit region.",
		Syntax:    "view show [x y w h]",
		Arguments: []string{"x, y, w, h: (Optional) Region to show instead of the viewport"},
		Examples:  []string{"view show", "view show 0 0 1000 1000"},
	},
	{
		Scope:     "history",
		Operation: "undo",
		ShortDesc: "Undo the last edit",
		LongDesc:  "Restores the scene to the previous snapshot.",
		Syntax:    "history undo",
		Examples:  []string{"history undo"},
	},
	{
		Scope:     "history",
		Operation: "redo",
		ShortDesc: "Redo an undone edit",
		LongDesc:  "Restores the scene to the next snapshot. A new edit after an undo discards the redo branch.",
		Syntax:    "history redo",
		Examples:  []string{"history redo"},
	},
	{
		Scope:     "history",
		Operation: "status",
		ShortDesc: "Show history status",
		LongDesc:  "Displays the snapshot count, cursor position, and undo/redo availability.",
		Syntax:    "history status",
		Examples:  []string{"history status"},
	},
	{
		Scope:     "system",
		Operation: "exit",
		ShortDesc: "Exit the program",
		LongDesc:  "Exits CnF-Infinity, saving the open document.",
		Syntax:    "system exit",
		Examples:  []string{"system exit"},
	},
	{
		Scope:     "system",
		Operation: "quit",
		ShortDesc: "Quit the program",
		LongDesc:  "Quits CnF-Infinity, saving the open document. Equivalent to 'system exit'.",
		Syntax:    "system quit",
		Examples:  []string{"system quit"},
	},
}
