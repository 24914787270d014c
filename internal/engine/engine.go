package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"knn_recommender/internal/model"
)

var (
	// ErrInvalidParameter 非法的查询参数 (k <= 0)
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptyCatalog 曲库为空，无法产出推荐
	ErrEmptyCatalog = errors.New("empty catalog")
)

// Engine 基于 KNN 的推荐引擎，持有一份只读曲库
// 曲库在构造后绝不原地修改，重新生成时通过 Swap 整体替换引用，
// 因此并发查询无需额外加锁
type Engine struct {
	mu      sync.RWMutex
	catalog []model.Song
}

// New 创建推荐引擎
func New(catalog []model.Song) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog 返回当前曲库，调用方只读
func (e *Engine) Catalog() []model.Song {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog
}

// Swap 整体替换曲库 (build-then-swap)
// 正在进行的查询要么看到旧曲库要么看到新曲库，不存在中间状态
func (e *Engine) Swap(catalog []model.Song) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog = catalog
}

// Distance 三维特征空间中的欧氏距离
// 满足 Distance(x, x) = 0 且对称
func Distance(a, b [3]float64) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// FindNeighbors 返回距查询点最近的 k 首歌曲，按距离升序
// 全量扫描，复杂度 O(曲库大小)；曲库很小，不需要索引结构
// k 超过曲库大小时收敛为曲库大小 (clamp 策略)
// 距离完全相等时稳定排序保持曲库插入顺序，保证固定 seed 下输出可复现
func (e *Engine) FindNeighbors(q model.Query, k int) ([]model.Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidParameter, k)
	}

	catalog := e.Catalog()
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	qf := q.Features()
	neighbors := make([]model.Neighbor, len(catalog))
	for i, song := range catalog {
		neighbors[i] = model.Neighbor{
			Song:     song,
			Distance: Distance(song.Features(), qf),
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	if k > len(neighbors) {
		k = len(neighbors)
	}
	return neighbors[:k], nil
}

// Recommend 对 k 个最近邻的流派做多数投票
// 平票策略: 多个流派并列最大票数时，取在邻居序列中最先出现的那个流派，
// 保证结果确定
func (e *Engine) Recommend(q model.Query, k int) (*model.Recommendation, error) {
	neighbors, err := e.FindNeighbors(q, k)
	if err != nil {
		return nil, err
	}

	// 记录各流派的首次出现顺序，平票时按此顺序裁决
	counts := make(map[string]int)
	order := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		genre := n.Song.Genre
		if counts[genre] == 0 {
			order = append(order, genre)
		}
		counts[genre]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	var best string
	for _, genre := range order {
		if counts[genre] == maxCount {
			best = genre
			break
		}
	}

	return &model.Recommendation{
		Neighbors:   neighbors,
		GenreCounts: counts,
		Genre:       best,
	}, nil
}
