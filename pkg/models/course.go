package models

import "github.com/shopspring/decimal"

// Course 课程目录中的一条记录，创建后不可修改
type Course struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Label 返回课程的展示文本，例如 "First Aid (R1500)"
func (c Course) Label() string {
	return c.Name + " (R" + c.Price.String() + ")"
}
