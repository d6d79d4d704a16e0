package circle

// CircleModel / MemberModel 是存储行，不是领域对象；转换见 mapping.go
type CircleModel struct {
	ID       int    `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"size:191;not null"`
	OwnerID  int    `gorm:"not null"`
	Capacity int    `gorm:"not null"`
}

func (CircleModel) TableName() string { return "circles" }

type MemberModel struct {
	ID       int    `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"size:191;not null"`
	Age      int    `gorm:"not null"`
	Grade    int    `gorm:"not null"`
	Major    string `gorm:"size:64;not null"`
	CircleID int    `gorm:"index;not null"`
}

func (MemberModel) TableName() string { return "members" }
