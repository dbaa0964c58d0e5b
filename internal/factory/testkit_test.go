package factory

// stubSource replays a fixed sequence of draws, then repeats the last
// value. Lets tests pin bar-mining durations and assembly outcomes.
type stubSource struct {
	draws []float64
	next  int
}

func (s *stubSource) Float() float64 {
	if len(s.draws) == 0 {
		return 0.5
	}
	v := s.draws[s.next]
	if s.next < len(s.draws)-1 {
		s.next++
	}
	return v
}

// mustSell builds a sale action or panics; for tests that construct
// robots by hand.
func mustSell(goods []Foobar) Action {
	act, err := NewSellingFoobars(goods)
	if err != nil {
		panic(err)
	}
	return act
}

// mustBuy builds a purchase action or panics.
func mustBuy(foos []FooUnit) Action {
	act, err := NewBuyingRobot(foos)
	if err != nil {
		panic(err)
	}
	return act
}

// mintFoos pushes n fresh foos into the pool and returns their serials.
func mintFoos(s *State, n int) []FooUnit {
	foos := make([]FooUnit, n)
	for i := range foos {
		foos[i] = s.mintFoo()
	}
	return foos
}

// mintBars pushes n fresh bars into the pool.
func mintBars(s *State, n int) []BarUnit {
	bars := make([]BarUnit, n)
	for i := range bars {
		bars[i] = s.mintBar()
	}
	return bars
}
