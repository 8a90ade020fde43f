package views

import "strconv"

// Paginator описывает разбиение упорядоченной коллекции на страницы.
type Paginator struct {
	Count               int // общее количество элементов
	PerPage             int // элементов на странице
	NumPages            int // количество страниц
	AllowEmptyFirstPage bool
}

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Number    int // номер страницы (с 1)
	Items     []T // элементы на текущей странице
	Paginator *Paginator
}

// NewPaginator считает количество страниц. Пустая коллекция даёт одну
// пустую первую страницу, если allowEmptyFirstPage, иначе ноль страниц.
func NewPaginator(count, perPage int, allowEmptyFirstPage bool) *Paginator {
	p := &Paginator{Count: count, PerPage: perPage, AllowEmptyFirstPage: allowEmptyFirstPage}
	if count == 0 {
		if allowEmptyFirstPage {
			p.NumPages = 1
		}
		return p
	}
	p.NumPages = (count + perPage - 1) / perPage
	return p
}

// PageRange возвращает номера всех страниц: 1..NumPages.
func (p *Paginator) PageRange() []int {
	rng := make([]int, 0, p.NumPages)
	for i := 1; i <= p.NumPages; i++ {
		rng = append(rng, i)
	}
	return rng
}

// Page возвращает срез items для страницы number.
// Номер вне диапазона 1..NumPages — ErrNotFound.
func pageOf[T any](p *Paginator, items []T, number int) (*Page[T], error) {
	if number < 1 || number > p.NumPages {
		return nil, notFoundf("invalid page (%d)", number)
	}

	start := (number - 1) * p.PerPage
	end := start + p.PerPage
	if end > p.Count {
		end = p.Count
	}

	return &Page[T]{Number: number, Items: items[start:end], Paginator: p}, nil
}

func (pg *Page[T]) HasNext() bool {
	return pg.Number < pg.Paginator.NumPages
}

func (pg *Page[T]) HasPrevious() bool {
	return pg.Number > 1
}

func (pg *Page[T]) HasOtherPages() bool {
	return pg.HasNext() || pg.HasPrevious()
}

func (pg *Page[T]) NextPageNumber() int {
	return pg.Number + 1
}

func (pg *Page[T]) PreviousPageNumber() int {
	return pg.Number - 1
}

// StartIndex — порядковый номер (с 1) первого элемента страницы
// относительно всей коллекции; 0 для пустой коллекции.
func (pg *Page[T]) StartIndex() int {
	if pg.Paginator.Count == 0 {
		return 0
	}
	return (pg.Number-1)*pg.Paginator.PerPage + 1
}

// EndIndex — порядковый номер последнего элемента страницы.
func (pg *Page[T]) EndIndex() int {
	end := pg.Number * pg.Paginator.PerPage
	if end > pg.Paginator.Count {
		end = pg.Paginator.Count
	}
	return end
}

// Paginate разбивает items на страницы по perPage и возвращает страницу,
// заданную токеном из запроса. Пустой токен — первая страница,
// "last" — последняя; всё, что не парсится как число, — ErrNotFound.
func Paginate[T any](items []T, perPage int, allowEmpty bool, token string) (*Paginator, *Page[T], error) {
	p := NewPaginator(len(items), perPage, allowEmpty)

	if token == "" {
		token = "1"
	}

	number, err := strconv.Atoi(token)
	if err != nil {
		if token == "last" {
			number = p.NumPages
		} else {
			return nil, nil, notFoundf("page is not \"last\", nor can it be converted to an int")
		}
	}

	page, err := pageOf(p, items, number)
	if err != nil {
		return nil, nil, err
	}
	return p, page, nil
}
