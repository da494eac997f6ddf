package entities

// Route is an ordered list of pools connecting an input currency to
// an output currency.
type Route struct {
	Pools  []*Pool
	Input  Currency
	Output Currency

	midPrice *Price
}

// NewRoute checks that the pools connect end to end and that the
// input and output currencies terminate the path.
func NewRoute(pools []*Pool, input, output Currency) (*Route, error) {
	if len(pools) == 0 {
		return nil, ErrEmptyRoute
	}
	chainID := pools[0].ChainID()
	for _, pool := range pools {
		if pool.ChainID() != chainID {
			return nil, ErrDifferentChain
		}
	}

	if !pools[0].InvolvesCurrency(input) {
		return nil, ErrCurrencyNotInvolved
	}
	last := pools[len(pools)-1]
	if !last.InvolvesCurrency(output) {
		return nil, ErrCurrencyNotInvolved
	}

	current := input
	for _, pool := range pools {
		if current.Equal(pool.Currency0) {
			current = pool.Currency1
		} else if current.Equal(pool.Currency1) {
			current = pool.Currency0
		} else {
			return nil, ErrRouteMismatch
		}
	}
	if !current.Equal(output) {
		return nil, ErrRouteMismatch
	}

	return &Route{
		Pools:  pools,
		Input:  input,
		Output: output,
	}, nil
}

// ChainID returns the chain the route's pools live on.
func (r *Route) ChainID() uint64 { return r.Pools[0].ChainID() }

// CurrencyPath returns the ordered currencies traversed by the route,
// input first.
func (r *Route) CurrencyPath() []Currency {
	path := make([]Currency, 0, len(r.Pools)+1)
	current := r.Input
	path = append(path, current)
	for _, pool := range r.Pools {
		if current.Equal(pool.Currency0) {
			current = pool.Currency1
		} else {
			current = pool.Currency0
		}
		path = append(path, current)
	}
	return path
}

// MidPrice returns the composed spot price along the route, quoted as
// output per input. The result is cached.
func (r *Route) MidPrice() (*Price, error) {
	if r.midPrice != nil {
		return r.midPrice, nil
	}

	current := r.Input
	var price *Price
	for _, pool := range r.Pools {
		var next *Price
		if current.Equal(pool.Currency0) {
			next = pool.Currency0Price()
			current = pool.Currency1
		} else {
			next = pool.Currency1Price()
			current = pool.Currency0
		}
		if price == nil {
			price = next
		} else {
			var err error
			price, err = price.Mul(next)
			if err != nil {
				return nil, err
			}
		}
	}

	r.midPrice = NewPrice(r.Input, r.Output, price.Denominator, price.Numerator)
	return r.midPrice, nil
}
