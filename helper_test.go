package bizcast

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for tests to create money with no currency set
func NO(v float64) Money { return M(v, "") }
