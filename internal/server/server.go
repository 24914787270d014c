package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"knn_recommender/internal/catalog"
	"knn_recommender/internal/engine"
	"knn_recommender/internal/logger"
	"knn_recommender/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogDefaults 重新生成曲库时使用的缺省参数
type CatalogDefaults struct {
	Count  int
	Seed   int64
	Ranges map[string]catalog.FeatureRanges
}

// Server 代表 HTTP API 服务器
// 服务器本身无状态，唯一的状态是引擎持有的内存曲库
type Server struct {
	router   *gin.Engine
	engine   *engine.Engine
	defaults CatalogDefaults
}

// NewServer 创建新的 HTTP 服务器
func NewServer(eng *engine.Engine, defaults CatalogDefaults) *Server {
	s := &Server{
		router:   gin.Default(),
		engine:   eng,
		defaults: defaults,
	}
	s.router.Use(s.corsMiddleware())
	s.router.Use(s.requestIDMiddleware())
	s.setupRoutes()
	return s
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware 为每个请求分配 ID，便于日志关联
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")

	v1.GET("/catalog", s.handleCatalog)
	v1.GET("/genres", s.handleGenres)
	v1.POST("/recommend", s.handleRecommend)
	v1.POST("/catalog/regenerate", s.handleRegenerate)
}

// handleCatalog 返回完整曲库及流派配色，供前端绘制 3D 散点图
// GET /api/v1/catalog
func (s *Server) handleCatalog(c *gin.Context) {
	songs := s.engine.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"count":  len(songs),
		"songs":  songs,
		"colors": catalog.GenreColors(),
	})
}

// handleGenres 返回流派列表及各自的特征生成区间
// GET /api/v1/genres
func (s *Server) handleGenres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": s.defaults.Ranges})
}

// RecommendRequest 推荐请求的参数: 查询点的三维特征和邻居数 K
type RecommendRequest struct {
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Valence      float64 `json:"valence"`
	K            int     `json:"k" binding:"required,min=1"`
}

// handleRecommend 处理推荐请求
// POST /api/v1/recommend
func (s *Server) handleRecommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	query := model.Query{
		Energy:       req.Energy,
		Danceability: req.Danceability,
		Valence:      req.Valence,
	}

	rec, err := s.engine.Recommend(query, req.K)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidParameter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("recommendation failed: %v", err)})
		return
	}

	logger.Debug("request %s: recommend k=%d -> genre=%s", c.GetString("request_id"), req.K, rec.Genre)
	c.JSON(http.StatusOK, rec)
}

// RegenerateRequest 重新生成曲库的参数
type RegenerateRequest struct {
	// 缺省时使用配置中的默认值，重置即传默认值重新生成
	Count *int   `json:"count"`
	Seed  *int64 `json:"seed"`
}

// handleRegenerate 重新生成曲库
// 先在旁路构建完整的新曲库，成功后才整体替换引擎的曲库引用，
// 构建失败时旧曲库原样保留
// POST /api/v1/catalog/regenerate
func (s *Server) handleRegenerate(c *gin.Context) {
	// 空请求体等价于重置为默认参数
	var req RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	count := s.defaults.Count
	if req.Count != nil {
		count = *req.Count
	}
	seed := s.defaults.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}

	songs, err := catalog.Generate(count, s.defaults.Ranges, seed)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidParameter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("regeneration failed: %v", err)})
		return
	}

	s.engine.Swap(songs)
	logger.Info("request %s: catalog regenerated (count=%d, seed=%d)", c.GetString("request_id"), count, seed)

	c.JSON(http.StatusOK, gin.H{
		"count": len(songs),
		"seed":  seed,
	})
}
