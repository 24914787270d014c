package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"knn_recommender/internal/model"
)

// ErrInvalidParameter 非法的生成参数 (数量、流派区间)
var ErrInvalidParameter = errors.New("invalid parameter")

const (
	// DefaultCount 默认曲库大小
	DefaultCount = 100
	// DefaultSeed 默认随机种子，复现参考数据集
	DefaultSeed int64 = 42
	// MaxCount 曲库大小上限，保证暴力扫描始终廉价
	MaxCount = 10000

	// 展示名称的编号循环长度
	nameCycle = 20
)

// Range 单个特征轴的生成区间 [Min, Max]
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// FeatureRanges 某个流派在三个特征轴上的生成区间，均须落在 [0, 100] 内
type FeatureRanges struct {
	Energy       Range `json:"energy" yaml:"energy"`
	Danceability Range `json:"danceability" yaml:"danceability"`
	Valence      Range `json:"valence" yaml:"valence"`
}

// DefaultRanges 返回参考数据集的流派区间表 (能量、可舞性、情绪效价)
func DefaultRanges() map[string]FeatureRanges {
	return map[string]FeatureRanges{
		"Pop":       {Energy: Range{60, 80}, Danceability: Range{70, 90}, Valence: Range{60, 85}},
		"Rock":      {Energy: Range{70, 95}, Danceability: Range{40, 70}, Valence: Range{40, 70}},
		"EDM":       {Energy: Range{80, 100}, Danceability: Range{75, 95}, Valence: Range{60, 90}},
		"Jazz":      {Energy: Range{20, 50}, Danceability: Range{30, 60}, Valence: Range{40, 70}},
		"Reggaeton": {Energy: Range{70, 90}, Danceability: Range{80, 100}, Valence: Range{65, 85}},
		"Indie":     {Energy: Range{40, 70}, Danceability: Range{40, 70}, Valence: Range{45, 75}},
		"Hip Hop":   {Energy: Range{60, 85}, Danceability: Range{70, 90}, Valence: Range{40, 70}},
		"Clasica":   {Energy: Range{20, 40}, Danceability: Range{10, 30}, Valence: Range{50, 80}},
	}
}

// GenreColors 返回各流派的展示颜色，仅供前端绘图使用
func GenreColors() map[string]string {
	return map[string]string{
		"Pop":       "#FF1493",
		"Rock":      "#FF4500",
		"EDM":       "#00FFFF",
		"Jazz":      "#FFD700",
		"Reggaeton": "#FF69B4",
		"Indie":     "#9370DB",
		"Hip Hop":   "#32CD32",
		"Clasica":   "#87CEEB",
	}
}

// Generate 生成一份合成曲库
// 相同的 (count, ranges, seed) 必定生成逐位一致的曲库:
// 随机序列由显式 seed 驱动，流派列表排序后再抽取，不依赖 map 遍历顺序
func Generate(count int, ranges map[string]FeatureRanges, seed int64) ([]model.Song, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidParameter, count)
	}
	if count > MaxCount {
		return nil, fmt.Errorf("%w: count %d exceeds max %d", ErrInvalidParameter, count, MaxCount)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: no genre ranges configured", ErrInvalidParameter)
	}

	genres := make([]string, 0, len(ranges))
	for genre, fr := range ranges {
		if err := validateRanges(genre, fr); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	sort.Strings(genres)

	r := rand.New(rand.NewSource(seed))
	songs := make([]model.Song, count)
	for i := 0; i < count; i++ {
		genre := genres[r.Intn(len(genres))]
		fr := ranges[genre]
		songs[i] = model.Song{
			ID:           i,
			Name:         fmt.Sprintf("%s Song %d", genre, i%nameCycle+1),
			Genre:        genre,
			Energy:       uniform(r, fr.Energy),
			Danceability: uniform(r, fr.Danceability),
			Valence:      uniform(r, fr.Valence),
		}
	}

	return songs, nil
}

func validateRanges(genre string, fr FeatureRanges) error {
	for _, axis := range []struct {
		name string
		rg   Range
	}{
		{"energy", fr.Energy},
		{"danceability", fr.Danceability},
		{"valence", fr.Valence},
	} {
		if axis.rg.Min > axis.rg.Max {
			return fmt.Errorf("%w: genre %q %s range inverted [%g, %g]",
				ErrInvalidParameter, genre, axis.name, axis.rg.Min, axis.rg.Max)
		}
		if axis.rg.Min < 0 || axis.rg.Max > 100 {
			return fmt.Errorf("%w: genre %q %s range [%g, %g] outside [0, 100]",
				ErrInvalidParameter, genre, axis.name, axis.rg.Min, axis.rg.Max)
		}
	}
	return nil
}

// uniform 在 [rg.Min, rg.Max) 内均匀抽取一个值
func uniform(r *rand.Rand, rg Range) float64 {
	return rg.Min + r.Float64()*(rg.Max-rg.Min)
}
