package github

import (
	"context"
	"net/url"
	"strings"

	"github.com/onurkarakus/nexus"
)

// GetLabels lists the labels defined in the repository.
func (p *Provider) GetLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	if err := p.client.Get(ctx, "labels", &labels); err != nil {
		return nil, err
	}
	return nonNil(labels), nil
}

// AddLabels adds one or more existing labels to an issue. GitHub returns
// every label on the issue after the change.
func (p *Provider) AddLabels(ctx context.Context, number int, names ...string) ([]Label, error) {
	if err := checkNumber(number); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nexus.ValidationError(providerName, "at least one label name is required")
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, nexus.ValidationError(providerName, "label names must not be blank")
		}
	}

	var labels []Label
	if err := p.client.Post(ctx, issuePath(number)+"/labels", addLabelsRequest{Labels: names}, &labels); err != nil {
		return nil, err
	}
	return nonNil(labels), nil
}

// RemoveLabel removes a label from an issue and returns the labels that
// remain. Removing a label the issue does not carry is a not-found error.
func (p *Provider) RemoveLabel(ctx context.Context, number int, name string) ([]Label, error) {
	if err := checkNumber(number); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, nexus.ValidationError(providerName, "label name is required")
	}

	var labels []Label
	if err := p.client.Delete(ctx, issuePath(number)+"/labels/"+url.PathEscape(name), &labels); err != nil {
		return nil, err
	}
	return nonNil(labels), nil
}

func nonNil(labels []Label) []Label {
	if labels == nil {
		return []Label{}
	}
	return labels
}
