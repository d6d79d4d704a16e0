package domain

import (
	"context"
	"strings"
)

// Circle 聚合根。Owner 不出现在 Members 里；容量按 owner+members 计
type Circle struct {
	ID       CircleID
	Name     string
	Capacity int
	Owner    Member
	Members  []Member
}

func NewCircle(name string, capacity int, owner Member) (*Circle, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("circle_name", "must not be empty")
	}
	if capacity < 1 {
		return nil, invalid("capacity", "must be at least 1")
	}
	return &Circle{Name: name, Capacity: capacity, Owner: owner, Members: []Member{}}, nil
}

// ReconstructCircle 从存储还原，owner 不得重复出现在 members 中
func ReconstructCircle(id CircleID, name string, owner Member, capacity int, members []Member) (*Circle, error) {
	for _, m := range members {
		if m.ID == owner.ID {
			return nil, invalid("members", "owner must not be listed among members")
		}
	}
	if members == nil {
		members = []Member{}
	}
	return &Circle{ID: id, Name: name, Capacity: capacity, Owner: owner, Members: members}, nil
}

// headcount owner 也占一个名额
func (c *Circle) headcount() int { return 1 + len(c.Members) }

func (c *Circle) AddMember(m Member) error {
	if c.headcount()+1 > c.Capacity {
		return invalid("capacity", "circle is full")
	}
	c.Members = append(c.Members, m)
	return nil
}

// Update 部分更新：nil 字段保持不变
func (c *Circle) Update(name *string, capacity *int) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return invalid("circle_name", "must not be empty")
		}
		c.Name = *name
	}
	if capacity != nil {
		if *capacity < c.headcount() {
			return invalid("capacity", "must not be smaller than current member count")
		}
		c.Capacity = *capacity
	}
	return nil
}

type CircleRepository interface {
	FindByID(ctx context.Context, id CircleID) (*Circle, error)
	Create(ctx context.Context, c *Circle) (*Circle, error)
	Update(ctx context.Context, c *Circle) error
	Delete(ctx context.Context, c *Circle) error
}
