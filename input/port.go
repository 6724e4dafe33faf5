package input

// Port is the serial controller port the emulated CPU reads buttons from.
//
// Writing 1 then 0 latches the port; the following reads return A, B, Select, Start, Up,
// Down, Left and Right, one bit per read, then one read of the unknown button policy,
// then 0 until the next latch.
type Port struct {
	s      *Sampler
	strobe byte
	index  int
}

const portIdle = NumButtons + 1

func NewPort(s *Sampler) *Port {
	return &Port{
		s:     s,
		index: portIdle,
	}
}

// Write the strobe bit.
func (p *Port) Write(v byte) {
	if v&1 == 0 && p.strobe == 1 {
		p.index = 0
	}
	p.strobe = v & 1
}

// Read the next button bit.
func (p *Port) Read() byte {
	if p.index < NumButtons {
		p.index++
		if p.s.State(Button(p.index)) {
			return 1
		}
	}
	return 0
}
