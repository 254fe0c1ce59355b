package util

import "github.com/LucasBeserra/magnetic-report-api/internal/constant"

// Applies the default page and page size and caps the size.
func NormalizePagination(page, pageSize uint) (uint, uint) {
	if page == 0 {
		page = constant.DefaultPage
	}
	if pageSize == 0 {
		pageSize = constant.DefaultPageSize
	}
	if pageSize > constant.MaxPageSize {
		pageSize = constant.MaxPageSize
	}
	return page, pageSize
}

func PageOffset(page, pageSize uint) int {
	if page == 0 {
		return 0
	}
	return int((page - 1) * pageSize)
}

func CalculateTotalPage(totalItems int64, pageSize uint) int {
	if pageSize <= 0 {
		pageSize = constant.DefaultPageSize
	}
	if totalItems == 0 {
		return 1
	}
	totalPage := int(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) != 0 {
		totalPage++
	}
	return totalPage
}
