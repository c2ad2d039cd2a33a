package fees

import (
	"workingna/internal/catalog"

	"github.com/shopspring/decimal"
)

var (
	// VATRate 折扣之后计算的增值税率
	VATRate = decimal.RequireFromString("0.15")

	twoCourseRate   = decimal.RequireFromString("0.05")
	threeCourseRate = decimal.RequireFromString("0.10")
	manyCourseRate  = decimal.RequireFromString("0.15")
)

// Selection 费用计算所需的选课集合
type Selection interface {
	IDs() []int
}

// Quote 一次费用计算的完整明细，金额保留全部精度
type Quote struct {
	Count        int             `json:"count"`
	Base         decimal.Decimal `json:"base"`
	DiscountRate decimal.Decimal `json:"discountRate"`
	Discount     decimal.Decimal `json:"discount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	VAT          decimal.Decimal `json:"vat"`
	Total        decimal.Decimal `json:"total"`
}

// DiscountRate 按选课数量返回折扣率：2 门 5%，3 门 10%，3 门以上 15%
func DiscountRate(n int) decimal.Decimal {
	switch {
	case n == 2:
		return twoCourseRate
	case n == 3:
		return threeCourseRate
	case n > 3:
		return manyCourseRate
	default:
		return decimal.Zero
	}
}

// Compute 计算选课费用明细
// 目录中找不到的课程价格按 0 计，但仍计入折扣档位的数量
func Compute(sel Selection, c *catalog.Catalog) Quote {
	var ids []int
	if sel != nil {
		ids = sel.IDs()
	}

	base := decimal.Zero
	for _, id := range ids {
		if course, ok := c.Lookup(id); ok {
			base = base.Add(course.Price)
		}
	}

	rate := DiscountRate(len(ids))
	discount := base.Mul(rate)
	subtotal := base.Sub(discount)
	vat := subtotal.Mul(VATRate)

	return Quote{
		Count:        len(ids),
		Base:         base,
		DiscountRate: rate,
		Discount:     discount,
		Subtotal:     subtotal,
		VAT:          vat,
		Total:        subtotal.Add(vat),
	}
}

// ComputeTotal 返回含税总价
func ComputeTotal(sel Selection, c *catalog.Catalog) decimal.Decimal {
	return Compute(sel, c).Total
}

// FormatRand 以两位小数格式化兰特金额，例如 R3277.50
func FormatRand(d decimal.Decimal) string {
	return "R" + d.StringFixed(2)
}

// Display 返回界面上显示的总价文本
func (q Quote) Display() string {
	return "Estimated Total: " + FormatRand(q.Total)
}
