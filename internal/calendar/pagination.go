package calendar

// DefaultPageSize используется, если размер страницы не задан.
const DefaultPageSize = 50

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T // элементы на текущей странице
	Page     int // номер страницы (с 1)
	PageSize int
	HasNext  bool
	HasPrev  bool
	Total    int
}

// Paginate возвращает срез items для страницы page (с 1).
// Некорректные page и pageSize заменяются значениями по умолчанию.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(items)
	// (page-1)*pageSize не должно переполняться: страницы за концом пустые.
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := start + min(pageSize, total-start)

	return Page[T]{
		Items:    items[start:end],
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}
