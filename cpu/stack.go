package cpu

// Stack is the call stack of return addresses.
type Stack struct {
	Limit int   // Maximum depth, or 0 for no limit.
	Data  []int // Return addresses, oldest first.
}

func (s *Stack) Push(ip int) {
	s.Data = append(s.Data, ip)
}

func (s *Stack) Pop() (ip int, ok bool) {
	ip, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return s.Limit > 0 && len(s.Data) >= s.Limit
}

func (s *Stack) Peek() (ip int, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
