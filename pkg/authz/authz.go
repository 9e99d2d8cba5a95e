// Package authz enforces role-based permissions with casbin. Modules declare
// the objects and actions they expose; policies map roles onto them. Role
// inheritance goes through casbin grouping rules, so ADMIN can subsume
// APPROVER without duplicating every policy line.
package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/go-faster/errors"

	"github.com/campuskit/campuskit/pkg/serrors"
)

var ErrForbidden = serrors.NewError("FORBIDDEN", "operation not permitted for role", "")

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Policy is one allow rule: the role may perform Action on Object.
type Policy struct {
	Role   string
	Object string
	Action string
}

// Grouping makes Role inherit every policy of Parent.
type Grouping struct {
	Role   string
	Parent string
}

type Service struct {
	enforcer *casbin.Enforcer
}

func NewService(policies []Policy, groupings []Grouping) (*Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, errors.Wrap(err, "authz model")
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, errors.Wrap(err, "authz enforcer")
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p.Role, p.Object, p.Action); err != nil {
			return nil, errors.Wrap(err, "authz add policy")
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g.Role, g.Parent); err != nil {
			return nil, errors.Wrap(err, "authz add grouping")
		}
	}
	return &Service{enforcer: e}, nil
}

// Can reports whether role may perform action on object. Enforcement errors
// fail closed.
func (s *Service) Can(role, object, action string) bool {
	ok, err := s.enforcer.Enforce(role, object, action)
	if err != nil {
		return false
	}
	return ok
}

// Require returns ErrForbidden unless role may perform action on object.
func (s *Service) Require(role, object, action string) error {
	if !s.Can(role, object, action) {
		return errors.Wrapf(ErrForbidden, "%s cannot %s %s", role, action, object)
	}
	return nil
}
