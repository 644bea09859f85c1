package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// defaultPolicy is the role/resource/action matrix. It is loaded once and the
// enforcer is read-only afterwards.
var defaultPolicy = [][]string{
	{"admin", "employee", "read"},
	{"admin", "employee", "create"},
	{"admin", "employee", "update"},
	{"admin", "employee", "delete"},
	{"admin", "employee", "bulk"},
	{"admin", "stats", "read"},
	{"admin", "user", "register"},

	{"hr", "employee", "read"},
	{"hr", "employee", "create"},
	{"hr", "employee", "update_self"},
	{"hr", "stats", "read"},

	{"employee", "employee", "read"},
	{"employee", "employee", "update_self"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddPolicies(defaultPolicy); err != nil {
		return nil, err
	}

	return e, nil
}
