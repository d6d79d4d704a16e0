package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	resp "go-circle-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(data))
	})
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/circles/:id"
	Binder  Binder
	UseTx   bool // 是否包事务（gorm.Transaction）
	Handler func(c *gin.Context, db *gorm.DB, in *I) (O, error)
}

// RegisterAction 一行注册一个接口（传入 *gorm.DB）
func RegisterAction[I any, O any](e EZ, db *gorm.DB, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		run := func(tx *gorm.DB) (O, error) { return a.Handler(c, tx, &in) }
		var out O
		var err error
		if a.UseTx {
			err = db.WithContext(c).Transaction(func(tx *gorm.DB) error {
				o, e := run(tx)
				out = o
				return e
			})
		} else {
			out, err = run(db.WithContext(c))
		}

		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func writeErr(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
}
