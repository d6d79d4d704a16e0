package circle

import (
	"go-circle-api/internal/domain"
)

// ToRows 拆成一行 circles + N+1 行 members（owner 在第 0 位）。
// owner 在 members 表里只是普通一行，靠 circles.owner_id 区分。
func ToRows(c *domain.Circle) (CircleModel, []MemberModel) {
	cm := CircleModel{
		ID:       int(c.ID),
		Name:     c.Name,
		OwnerID:  int(c.Owner.ID),
		Capacity: c.Capacity,
	}
	rows := make([]MemberModel, 0, 1+len(c.Members))
	rows = append(rows, memberRow(c.Owner, int(c.ID)))
	for _, m := range c.Members {
		rows = append(rows, memberRow(m, int(c.ID)))
	}
	return cm, rows
}

// FromRows 按 owner_id 把成员行切成 owner 和其他人。
// owner 行缺失说明聚合写了一半，返回 ErrOwnerNotFound 而不是硬造一个。
func FromRows(cm CircleModel, rows []MemberModel) (*domain.Circle, error) {
	var owner domain.Member
	found := false
	others := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		m := domain.ReconstructMember(
			domain.MemberID(row.ID),
			row.Name,
			row.Age,
			domain.Grade(row.Grade),
			domain.Major(row.Major),
		)
		if row.ID == cm.OwnerID {
			owner = m
			found = true
			continue
		}
		others = append(others, m)
	}
	if !found {
		return nil, domain.ErrOwnerNotFound
	}
	return domain.ReconstructCircle(domain.CircleID(cm.ID), cm.Name, owner, cm.Capacity, others)
}

func memberRow(m domain.Member, circleID int) MemberModel {
	return MemberModel{
		ID:       int(m.ID),
		Name:     m.Name,
		Age:      m.Age,
		Grade:    int(m.Grade),
		Major:    string(m.Major),
		CircleID: circleID,
	}
}
