package bollywood

// PID is a unique reference to a running actor instance.
type PID struct {
	ID string
}

// String returns the PID's string form.
func (pid *PID) String() string {
	return pid.ID
}
