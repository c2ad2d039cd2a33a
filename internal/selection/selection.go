package selection

import "sort"

// Set 当前会话选中的课程 ID 集合
// 不做并发保护，一个 Set 只属于一个会话
type Set struct {
	ids map[int]struct{}
}

// New 创建集合，可选地预置若干 ID
func New(ids ...int) *Set {
	s := &Set{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle 已选中则移除，否则加入；返回操作后是否处于选中状态
// 未知 ID 同样会被记录，计算费用时按 0 处理
func (s *Set) Toggle(id int) bool {
	if s.ids == nil {
		s.ids = make(map[int]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Set) Contains(id int) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs 返回升序排列的 ID 副本
func (s *Set) IDs() []int {
	ids := make([]int, 0, s.Len())
	if s == nil {
		return ids
	}
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Equal 判断两个集合是否包含相同的 ID
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.IDs() {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
