package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/geoaudit/pkg/geoaudit/internalerr"
)

// Kinds lists the schema types Build accepts.
var Kinds = []string{"faq", "article", "howto", "breadcrumb", "organization", "person"}

// Build decodes a YAML description of the given kind and returns its markup.
// faq expects a list of question/answer pairs (or "question:answer"
// strings), breadcrumb a list of name/url items, the rest a mapping.
func Build(kind string, data []byte) (any, error) {
	switch kind {
	case "faq":
		var raw []yaml.Node
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode faq: %w", err)
		}
		qs := make([]QA, 0, len(raw))
		for i := range raw {
			qa, err := decodeQA(&raw[i])
			if err != nil {
				return nil, fmt.Errorf("faq item %d: %w", i+1, err)
			}
			qs = append(qs, qa)
		}
		return FAQ(qs), nil
	case "article":
		var in ArticleInput
		if err := decodeStrict(data, &in); err != nil {
			return nil, err
		}
		if in.Headline == "" || in.DatePublished == "" {
			return nil, fmt.Errorf("%w: article needs headline and date_published", internalerr.ErrInvalidInput)
		}
		return NewArticle(in), nil
	case "howto":
		var in HowToInput
		if err := decodeStrict(data, &in); err != nil {
			return nil, err
		}
		return NewHowTo(in), nil
	case "breadcrumb":
		var items []Crumb
		if err := decodeStrict(data, &items); err != nil {
			return nil, err
		}
		return Breadcrumbs(items), nil
	case "organization":
		var in OrganizationInput
		if err := decodeStrict(data, &in); err != nil {
			return nil, err
		}
		if in.Name == "" || in.URL == "" {
			return nil, fmt.Errorf("%w: organization needs name and url", internalerr.ErrInvalidInput)
		}
		return NewOrganization(in), nil
	case "person":
		var in PersonInput
		if err := decodeStrict(data, &in); err != nil {
			return nil, err
		}
		if in.Name == "" {
			return nil, fmt.Errorf("%w: person needs name", internalerr.ErrInvalidInput)
		}
		return NewPerson(in), nil
	default:
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownSchemaType, kind)
	}
}

func decodeQA(n *yaml.Node) (QA, error) {
	if n.Kind == yaml.ScalarNode {
		qa, ok := ParseQA(n.Value)
		if !ok {
			return QA{}, fmt.Errorf("%w: %q is not question:answer", internalerr.ErrInvalidInput, n.Value)
		}
		return qa, nil
	}
	var qa QA
	if err := n.Decode(&qa); err != nil {
		return QA{}, err
	}
	return qa, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty schema input", internalerr.ErrInvalidInput)
		}
		return fmt.Errorf("decode schema input: %w", err)
	}
	return nil
}
