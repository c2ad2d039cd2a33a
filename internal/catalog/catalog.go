package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"workingna/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Catalog 固定的课程目录，构建后只读
type Catalog struct {
	courses []models.Course
	index   map[int]int
}

var defaultCourses = []models.Course{
	{ID: 1, Name: "First Aid", Price: decimal.NewFromInt(1500)},
	{ID: 2, Name: "Sewing", Price: decimal.NewFromInt(1500)},
	{ID: 3, Name: "Landscaping", Price: decimal.NewFromInt(1500)},
	{ID: 4, Name: "Life Skills", Price: decimal.NewFromInt(1500)},
	{ID: 5, Name: "Child Minding", Price: decimal.NewFromInt(750)},
	{ID: 6, Name: "Cooking", Price: decimal.NewFromInt(750)},
	{ID: 7, Name: "Garden Maintenance", Price: decimal.NewFromInt(750)},
}

// Default 返回内置的 7 门课程目录
func Default() *Catalog {
	c, _ := New(defaultCourses)
	return c
}

// New 根据给定课程列表创建目录，课程 ID 必须唯一且价格不能为负
func New(courses []models.Course) (*Catalog, error) {
	c := &Catalog{
		courses: make([]models.Course, 0, len(courses)),
		index:   make(map[int]int, len(courses)),
	}

	for _, course := range courses {
		if _, ok := c.index[course.ID]; ok {
			return nil, fmt.Errorf("duplicate course id %d", course.ID)
		}
		if course.Price.IsNegative() {
			return nil, fmt.Errorf("course %d has negative price %s", course.ID, course.Price)
		}
		c.index[course.ID] = len(c.courses)
		c.courses = append(c.courses, course)
	}

	return c, nil
}

// Load 从 JSON 文件加载目录，path 为空时使用内置目录
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	if path == "" {
		logger.Info("Using built-in course catalog", zap.Int("courses", len(defaultCourses)))
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var courses []models.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	c, err := New(courses)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	logger.Info("Loaded course catalog", zap.String("path", path), zap.Int("courses", c.Len()))
	return c, nil
}

// Lookup 按 ID 查找课程
func (c *Catalog) Lookup(id int) (models.Course, bool) {
	if c == nil {
		return models.Course{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return models.Course{}, false
	}
	return c.courses[i], true
}

func (c *Catalog) Contains(id int) bool {
	_, ok := c.Lookup(id)
	return ok
}

// List 按目录顺序返回课程的副本
func (c *Catalog) List() []models.Course {
	if c == nil {
		return nil
	}
	courses := make([]models.Course, len(c.courses))
	copy(courses, c.courses)
	return courses
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.courses)
}
