package session

import (
	"fmt"

	"cnfinity/local-app/pkg/model"
)

// handleDocumentNew handles the document new command
func handleDocumentNew(s *Session, cmd model.Command) (interface{}, error) {
	info, sc, hist, err := s.DataManager.DocumentManager.DocumentNew(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	s.documentSet(info, sc, hist)
	return fmt.Sprintf("Document '%s' created and selected", info.Name), nil
}

// handleDocumentOpen handles the document open command
func handleDocumentOpen(s *Session, cmd model.Command) (interface{}, error) {
	info, sc, hist, err := s.DataManager.DocumentManager.DocumentOpen(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	s.documentSet(info, sc, hist)
	return fmt.Sprintf("Document '%s' opened", info.Name), nil
}

// handleDocumentSave handles the document save command
func handleDocumentSave(s *Session, cmd model.Command) (interface{}, error) {
	if s.Document == nil {
		return nil, ErrNoDocument
	}
	if err := s.DataManager.DocumentManager.DocumentSave(s.Document, s.History); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Document '%s' saved", s.Document.Name), nil
}

// handleDocumentList handles the document list command
func handleDocumentList(s *Session, cmd model.Command) (interface{}, error) {
	return s.DataManager.DocumentManager.DocumentList()
}

// handleDocumentDelete handles the document delete command. Without an
// argument it deletes the currently open document.
func handleDocumentDelete(s *Session, cmd model.Command) (interface{}, error) {
	name := ""
	if len(cmd.Args) == 1 {
		name = cmd.Args[0]
	} else {
		if s.Document == nil {
			return nil, ErrNoDocument
		}
		name = s.Document.Name
	}

	if err := s.DataManager.DocumentManager.DocumentDelete(name); err != nil {
		return nil, err
	}
	if s.Document != nil && s.Document.Name == name {
		s.documentClear()
	}
	return fmt.Sprintf("Document '%s' deleted", name), nil
}

// handleDocumentExport handles the document export command
func handleDocumentExport(s *Session, cmd model.Command) (interface{}, error) {
	if s.Document == nil {
		return nil, ErrNoDocument
	}

	format := "json"
	if len(cmd.Args) == 2 {
		format = cmd.Args[1]
	}
	if err := s.DataManager.DocumentManager.DocumentExport(s.History, cmd.Args[0], format); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Document '%s' exported to '%s'", s.Document.Name, cmd.Args[0]), nil
}

// handleDocumentImport handles the document import command. The imported
// document becomes the session's current one.
func handleDocumentImport(s *Session, cmd model.Command) (interface{}, error) {
	format := "json"
	if len(cmd.Args) == 3 {
		format = cmd.Args[2]
	}
	info, sc, hist, err := s.DataManager.DocumentManager.DocumentImport(cmd.Args[0], cmd.Args[1], format)
	if err != nil {
		return nil, err
	}
	s.documentSet(info, sc, hist)
	return fmt.Sprintf("Document '%s' imported from '%s'", info.Name, cmd.Args[1]), nil
}
