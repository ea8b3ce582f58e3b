package question

import "fmt"

// LinkType is not an answer kind of its own: it delegates every
// operation to the real kind named by its Type metadata. Metadata:
//
//	Parent    code of the question it links to
//	Type      the kind it really is
//	Relation  "groupby" groups answers by the parent question's value
type LinkType struct {
	base
}

func newLink(r *Registry) Type {
	t := &LinkType{base: newBase(r, KindLink, "Link")}
	return t
}

func (t *LinkType) Init(questionID int) error {
	if err := t.base.Init(questionID); err != nil {
		return err
	}
	kind := t.Get("Type", "")
	parent := t.Get("Parent", "")
	if kind != "" && parent != "" {
		t.description = fmt.Sprintf("%s linked to %s", kind, parent)
	}
	return nil
}

// TargetKind is the kind this link really is.
func (t *LinkType) TargetKind() Kind {
	return Kind(t.Get("Type", ""))
}

// Relation describes how the link relates to its parent question.
func (t *LinkType) Relation() string {
	return t.Get("Relation", "")
}

// Target returns the delegate instance carrying this link's record and
// metadata.
func (t *LinkType) Target() (Type, error) {
	return t.delegate()
}

// ParentQuestionID resolves the linked question's code to its id.
func (t *LinkType) ParentQuestionID() (int, error) {
	parent := t.Get("Parent", "")
	q, err := t.reg.store.QuestionByCode(parent)
	if err != nil {
		return 0, err
	}
	return q.ID, nil
}

// CanonicalizeForStorage defers to the real kind.
func (t *LinkType) CanonicalizeForStorage(raw string) (string, error) {
	real, err := t.delegate()
	if err != nil {
		return "", err
	}
	return real.CanonicalizeForStorage(raw)
}
