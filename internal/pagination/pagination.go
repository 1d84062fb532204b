package pagination

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`     // номер страницы (с 1)
	PageSize int   `json:"pageSize"` // количество элементов на странице
	HasNext  bool  `json:"hasNext"`
	HasPrev  bool  `json:"hasPrev"`
	Total    int64 `json:"total"` // общее количество элементов
}

const defaultPageSize = 20

// Normalize приводит параметры страницы к допустимым значениям.
func Normalize(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// Offset возвращает смещение для limit/offset-запроса в хранилище.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// Wrap собирает страницу из уже обрезанного хранилищем среза и общего счётчика.
func Wrap[T any](items []T, page, pageSize int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	end := int64(Offset(page, pageSize) + len(items))
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}

// Paginate возвращает срез items для указанной страницы и метаданные.
// Используется для списков, которые фильтруются в памяти (проекции фермера).
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	page, pageSize = Normalize(page, pageSize)
	total := len(items)

	start := Offset(page, pageSize)
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:    items[start:end],
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    int64(total),
	}
}
