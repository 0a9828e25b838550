package model

import "fmt"

// Selection is a section placed in a target group together with the group it was copied from
type Selection struct {
	Assigned    *Section
	SourceGroup string
}

func NewSelection(assigned *Section, sourceGroup string) (Selection, error) {
	if assigned == nil {
		return Selection{}, fmt.Errorf("%w: assigned section", ErrMissingField)
	} else if sourceGroup == "" {
		return Selection{}, fmt.Errorf("%w: source group", ErrMissingField)
	}
	return Selection{Assigned: assigned, SourceGroup: sourceGroup}, nil
}

func (selection Selection) Description() string {
	return fmt.Sprintf("%v (from %v) taught by %v",
		selection.Assigned.Subject(),
		selection.SourceGroup,
		selection.Assigned.Professor().FullName(),
	)
}

func (selection Selection) String() string {
	return selection.Description()
}

// AssignedSections extracts the assigned sections keeping the selections' order
func AssignedSections(selections []Selection) []*Section {
	sections := make([]*Section, len(selections))
	for i, selection := range selections {
		sections[i] = selection.Assigned
	}
	return sections
}
