package circle

import (
	"context"

	"go-circle-api/internal/domain"
)

type CreateIn struct {
	CircleName string `json:"circle_name" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required"`
	OwnerName  string `json:"owner_name" binding:"required"`
	OwnerAge   int    `json:"owner_age" binding:"required"`
	OwnerGrade int    `json:"owner_grade" binding:"required"`
	OwnerMajor string `json:"owner_major" binding:"required"`
}

type CreateOut struct {
	CircleID int `json:"circle_id"`
	OwnerID  int `json:"owner_id"`
}

type MemberOut struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Grade int    `json:"grade"`
	Major string `json:"major"`
}

type CircleOut struct {
	CircleID   int         `json:"circle_id"`
	CircleName string      `json:"circle_name"`
	Capacity   int         `json:"capacity"`
	Owner      MemberOut   `json:"owner"`
	Members    []MemberOut `json:"members"`
}

type UpdateIn struct {
	CircleName *string `json:"circle_name"`
	Capacity   *int    `json:"capacity"`
}

type UpdateOut struct {
	ID int `json:"id"`
}

type AddMemberIn struct {
	Name  string `json:"name" binding:"required"`
	Age   int    `json:"age" binding:"required"`
	Grade int    `json:"grade" binding:"required"`
	Major string `json:"major" binding:"required"`
}

type AddMemberOut struct {
	CircleID int `json:"circle_id"`
	MemberID int `json:"member_id"`
}

// Service 每个方法构造值对象后只调一次仓储操作；校验失败不会碰存储
type Service struct {
	repo domain.CircleRepository
}

func NewService(repo domain.CircleRepository) *Service { return &Service{repo: repo} }

func (s *Service) Create(ctx context.Context, in CreateIn) (CreateOut, error) {
	owner, err := buildMember(in.OwnerName, in.OwnerAge, in.OwnerGrade, in.OwnerMajor)
	if err != nil {
		return CreateOut{}, err
	}
	c, err := domain.NewCircle(in.CircleName, in.Capacity, owner)
	if err != nil {
		return CreateOut{}, err
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return CreateOut{}, err
	}
	return CreateOut{CircleID: int(created.ID), OwnerID: int(created.Owner.ID)}, nil
}

func (s *Service) Fetch(ctx context.Context, id int) (CircleOut, error) {
	c, err := s.repo.FindByID(ctx, domain.CircleID(id))
	if err != nil {
		return CircleOut{}, err
	}
	return circleOut(c), nil
}

func (s *Service) Update(ctx context.Context, id int, in UpdateIn) (UpdateOut, error) {
	c, err := s.repo.FindByID(ctx, domain.CircleID(id))
	if err != nil {
		return UpdateOut{}, err
	}
	if err := c.Update(in.CircleName, in.Capacity); err != nil {
		return UpdateOut{}, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return UpdateOut{}, err
	}
	return UpdateOut{ID: int(c.ID)}, nil
}

func (s *Service) AddMember(ctx context.Context, id int, in AddMemberIn) (AddMemberOut, error) {
	c, err := s.repo.FindByID(ctx, domain.CircleID(id))
	if err != nil {
		return AddMemberOut{}, err
	}
	m, err := buildMember(in.Name, in.Age, in.Grade, in.Major)
	if err != nil {
		return AddMemberOut{}, err
	}
	if err := c.AddMember(m); err != nil {
		return AddMemberOut{}, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return AddMemberOut{}, err
	}
	// Update 回填了新成员的自增 ID
	added := c.Members[len(c.Members)-1]
	return AddMemberOut{CircleID: int(c.ID), MemberID: int(added.ID)}, nil
}

func (s *Service) Remove(ctx context.Context, id int) error {
	c, err := s.repo.FindByID(ctx, domain.CircleID(id))
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c)
}

func buildMember(name string, age, grade int, major string) (domain.Member, error) {
	g, err := domain.NewGrade(grade)
	if err != nil {
		return domain.Member{}, err
	}
	mj, err := domain.ParseMajor(major)
	if err != nil {
		return domain.Member{}, err
	}
	return domain.NewMember(name, age, g, mj)
}

func circleOut(c *domain.Circle) CircleOut {
	members := make([]MemberOut, 0, len(c.Members))
	for _, m := range c.Members {
		members = append(members, memberOut(m))
	}
	return CircleOut{
		CircleID:   int(c.ID),
		CircleName: c.Name,
		Capacity:   c.Capacity,
		Owner:      memberOut(c.Owner),
		Members:    members,
	}
}

func memberOut(m domain.Member) MemberOut {
	return MemberOut{
		ID:    int(m.ID),
		Name:  m.Name,
		Age:   m.Age,
		Grade: int(m.Grade),
		Major: string(m.Major),
	}
}
