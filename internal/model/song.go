package model

// Song 代表曲库中的一首歌曲
// 每首歌在三维特征空间中有一个坐标: 能量、可舞性、情绪效价，取值范围 [0, 100]
type Song struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"` // 展示名称，算法不使用
	Genre        string  `json:"genre"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Valence      float64 `json:"valence"`
}

// Features 返回歌曲的三维特征向量
func (s Song) Features() [3]float64 {
	return [3]float64{s.Energy, s.Danceability, s.Valence}
}

// Query 代表一次查询点，本身不属于曲库，仅在单次请求内存在
type Query struct {
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Valence      float64 `json:"valence"`
}

// Features 返回查询点的三维特征向量
func (q Query) Features() [3]float64 {
	return [3]float64{q.Energy, q.Danceability, q.Valence}
}

// Neighbor 将一首歌曲与它到当前查询点的距离配对
// 它是按查询派生出的视图，查询点或 K 变化时必须重新计算
type Neighbor struct {
	Song     Song    `json:"song"`
	Distance float64 `json:"distance"`
}

// Recommendation 一次推荐的完整结果
type Recommendation struct {
	Neighbors   []Neighbor     `json:"neighbors"`    // 按距离升序，长度为 min(k, 曲库大小)
	GenreCounts map[string]int `json:"genre_counts"` // 各流派在邻居中的出现次数
	Genre       string         `json:"genre"`        // 多数投票选出的流派
}
