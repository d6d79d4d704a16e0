package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-circle-api/internal/domain"
	"go-circle-api/internal/feature/circle"
	"go-circle-api/internal/repo"
	httpez "go-circle-api/internal/transport/http/ez"
)

// CircleModule 挂载圈子相关接口；ops 面挂查档/删除
type CircleModule struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCircleModule(db *gorm.DB, l *zap.Logger) *CircleModule {
	return &CircleModule{db: db, log: l}
}

func (m *CircleModule) service(tx *gorm.DB) *circle.Service {
	return circle.NewService(repo.NewCircleRepo(tx, m.log))
}

func (m *CircleModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api)

	httpez.RegisterAction[circle.CreateIn, circle.CreateOut](ez, m.db, httpez.Action[circle.CreateIn, circle.CreateOut]{
		Method: http.MethodPost,
		Path:   "/circles",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *circle.CreateIn) (circle.CreateOut, error) {
			out, err := m.service(tx).Create(c, *in)
			if err != nil {
				return circle.CreateOut{}, asHTTPErr(err)
			}
			return out, nil
		},
	})

	httpez.RegisterAction[struct{}, circle.CircleOut](ez, m.db, httpez.Action[struct{}, circle.CircleOut]{
		Method: http.MethodGet,
		Path:   "/circles/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (circle.CircleOut, error) {
			id, err := pathID(c)
			if err != nil {
				return circle.CircleOut{}, err
			}
			out, err := m.service(tx).Fetch(c, id)
			if err != nil {
				return circle.CircleOut{}, asHTTPErr(err)
			}
			return out, nil
		},
	})

	httpez.RegisterAction[circle.UpdateIn, circle.UpdateOut](ez, m.db, httpez.Action[circle.UpdateIn, circle.UpdateOut]{
		Method: http.MethodPut,
		Path:   "/circles/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *circle.UpdateIn) (circle.UpdateOut, error) {
			id, err := pathID(c)
			if err != nil {
				return circle.UpdateOut{}, err
			}
			out, err := m.service(tx).Update(c, id, *in)
			if err != nil {
				return circle.UpdateOut{}, asHTTPErr(err)
			}
			return out, nil
		},
	})

	httpez.RegisterAction[circle.AddMemberIn, circle.AddMemberOut](ez, m.db, httpez.Action[circle.AddMemberIn, circle.AddMemberOut]{
		Method: http.MethodPost,
		Path:   "/circles/:id/members",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *circle.AddMemberIn) (circle.AddMemberOut, error) {
			id, err := pathID(c)
			if err != nil {
				return circle.AddMemberOut{}, err
			}
			out, err := m.service(tx).AddMember(c, id, *in)
			if err != nil {
				return circle.AddMemberOut{}, asHTTPErr(err)
			}
			return out, nil
		},
	})
}

func (m *CircleModule) MountOps(ops *gin.RouterGroup) {
	ez := httpez.New(ops)

	// 平铺两张表，排障用（不分页，圈子量级很小）
	type dumpOut struct {
		Circles []circle.CircleModel `json:"circles"`
		Members []circle.MemberModel `json:"members"`
	}
	httpez.RegisterAction[struct{}, dumpOut](ez, m.db, httpez.Action[struct{}, dumpOut]{
		Method: http.MethodGet,
		Path:   "/circles",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (dumpOut, error) {
			out := dumpOut{Circles: []circle.CircleModel{}, Members: []circle.MemberModel{}}
			if err := tx.Find(&out.Circles).Error; err != nil {
				return dumpOut{}, httpez.Internal("list circles failed", err)
			}
			if err := tx.Find(&out.Members).Error; err != nil {
				return dumpOut{}, httpez.Internal("list members failed", err)
			}
			return out, nil
		},
	})

	httpez.RegisterAction[struct{}, gin.H](ez, m.db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/circles/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			if err := m.service(tx).Remove(c, id); err != nil {
				return nil, asHTTPErr(err)
			}
			return gin.H{"id": id}, nil
		},
	})
}

func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, httpez.BadRequest("invalid id")
	}
	return id, nil
}

// asHTTPErr 领域错误 → 统一响应码
func asHTTPErr(err error) error {
	switch {
	case domain.IsValidation(err):
		return httpez.BadRequest(err.Error())
	case domain.IsNotFound(err):
		return httpez.NotFound("Circle not found")
	case errors.Is(err, domain.ErrOwnerNotFound):
		return httpez.Internal("circle data is inconsistent", err)
	default:
		return httpez.Internal("internal error", err)
	}
}
