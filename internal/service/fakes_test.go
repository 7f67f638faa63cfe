package service

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/schema"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// fakeStore is an in-memory stand-in for the pgx store. It implements the
// narrow interfaces the services declare.
type fakeStore struct {
	mu        sync.Mutex
	templates map[string]*schema.Template
	instances map[string]*schema.Instance
	users     map[string]*store.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		templates: map[string]*schema.Template{},
		instances: map[string]*schema.Instance{},
		users:     map[string]*store.User{},
	}
}

func (f *fakeStore) CreateTemplate(_ context.Context, t *schema.Template) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.templates {
		if existing.Family == t.Family && existing.Name == t.Name {
			return apperrors.ErrAlreadyExists
		}
	}
	cp := *t
	f.templates[t.ID] = &cp
	return nil
}

func (f *fakeStore) GetTemplate(_ context.Context, family schema.Family, id string) (*schema.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.templates[id]
	if !ok || t.Family != family {
		return nil, apperrors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) ListTemplates(_ context.Context, family schema.Family, limit, offset int) ([]*schema.Template, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*schema.Template
	for _, t := range f.templates {
		if t.Family == family {
			cp := *t
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeStore) UpdateTemplate(_ context.Context, t *schema.Template) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.templates[t.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *t
	f.templates[t.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteTemplate(_ context.Context, family schema.Family, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.templates[id]
	if !ok || t.Family != family {
		return apperrors.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

func (f *fakeStore) CountInstancesByTemplate(_ context.Context, templateID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, inst := range f.instances {
		if inst.TemplateID == templateID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateInstance(_ context.Context, inst *schema.Instance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *inst
	f.instances[inst.ID] = &cp
	return nil
}

func (f *fakeStore) GetInstance(_ context.Context, family schema.Family, id string) (*schema.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inst, ok := f.instances[id]
	if !ok || inst.Family != family {
		return nil, apperrors.ErrNotFound
	}
	cp := *inst
	return &cp, nil
}

func (f *fakeStore) ListInstancesByTemplate(_ context.Context, family schema.Family, templateID string, limit, offset int) ([]*schema.Instance, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*schema.Instance
	for _, inst := range f.instances {
		if inst.Family == family && inst.TemplateID == templateID {
			cp := *inst
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeStore) ListElementsBySite(_ context.Context, siteID string) ([]*schema.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*schema.Instance
	for _, inst := range f.instances {
		if inst.Family == schema.FamilyElement && inst.SiteID == siteID {
			cp := *inst
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateInstance(_ context.Context, inst *schema.Instance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.instances[inst.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *inst
	f.instances[inst.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteInstance(_ context.Context, family schema.Family, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inst, ok := f.instances[id]
	if !ok || inst.Family != family {
		return apperrors.ErrNotFound
	}
	delete(f.instances, id)
	if family == schema.FamilySite {
		for _, el := range f.instances {
			if el.SiteID == id {
				el.SiteID = ""
			}
		}
	}
	return nil
}

func (f *fakeStore) SetSiteElements(_ context.Context, siteID string, elementIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range elementIDs {
		wanted[id] = true
	}
	for id, inst := range f.instances {
		if inst.SiteID == siteID {
			inst.SiteID = ""
		}
		if wanted[id] {
			inst.SiteID = siteID
		}
	}
	return nil
}

func (f *fakeStore) CreateUser(_ context.Context, u *store.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Username]; ok {
		return apperrors.ErrAlreadyExists
	}
	cp := *u
	f.users[u.Username] = &cp
	return nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeAudit records the actions it sees.
type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *fakeAudit) LogTemplateChange(_ context.Context, operation, family, templateID, actor string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, "template."+operation)
	return nil
}

func (a *fakeAudit) LogInstanceChange(_ context.Context, operation, family, instanceID, actor string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, "instance."+operation)
	return nil
}
