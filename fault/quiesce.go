package fault

import "faultcore-go/periph"

// Quiescer drives the peripherals into a minimal, predictable state once the
// diagnostic report is out. Every step levels state rather than toggling it,
// so running the sequence twice lands in the same place.
type Quiescer struct {
	IRQ      periph.InterruptController
	Timers   periph.TimerSet
	ADC      periph.ADCSet
	Serial   periph.SerialSet
	Recovery []periph.IRQLine
}

// Quiesce masks interrupt delivery, takes down every timer, converter and
// serial channel, then restores only the recovery lines before unmasking
// globally. The serial class goes down here, which is why the report has to
// be transmitted first.
func (q *Quiescer) Quiesce() {
	if q.IRQ != nil {
		q.IRQ.DisableGlobal()
		q.IRQ.DisableAll()
	}
	if q.Timers != nil {
		q.Timers.DisableAll()
	}
	if q.ADC != nil {
		q.ADC.DisableAll()
	}
	if q.Serial != nil {
		q.Serial.DisableAll()
	}
	if q.IRQ != nil {
		for _, line := range q.Recovery {
			q.IRQ.EnableLine(line)
		}
		q.IRQ.EnableGlobal()
	}
}
