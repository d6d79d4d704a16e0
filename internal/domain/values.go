package domain

import "fmt"

// CircleID / MemberID 为数据库自增主键；0 表示尚未持久化
type CircleID int

type MemberID int

func (id CircleID) Assigned() bool { return id > 0 }
func (id MemberID) Assigned() bool { return id > 0 }

// Grade 学年，取值 1-4
type Grade int

const (
	GradeMin = 1
	GradeMax = 4
)

func NewGrade(v int) (Grade, error) {
	if v < GradeMin || v > GradeMax {
		return 0, invalid("grade", fmt.Sprintf("must be between %d and %d, got %d", GradeMin, GradeMax, v))
	}
	return Grade(v), nil
}

// Major 专业，封闭枚举
type Major string

const (
	MajorMusic           Major = "Music"
	MajorArt             Major = "Art"
	MajorLaw             Major = "Law"
	MajorEconomics       Major = "Economics"
	MajorComputerScience Major = "ComputerScience"
	MajorEngineering     Major = "Engineering"
)

var majors = map[string]Major{
	string(MajorMusic):           MajorMusic,
	string(MajorArt):             MajorArt,
	string(MajorLaw):             MajorLaw,
	string(MajorEconomics):       MajorEconomics,
	string(MajorComputerScience): MajorComputerScience,
	string(MajorEngineering):     MajorEngineering,
}

func ParseMajor(s string) (Major, error) {
	m, ok := majors[s]
	if !ok {
		return "", invalid("major", fmt.Sprintf("unknown major %q", s))
	}
	return m, nil
}
