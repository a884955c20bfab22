package htable

// MaxCapacity is the largest bucket count a table accepts: the largest prime
// below 2^32, so every bucket index fits the 32-bit digest modulus.
const MaxCapacity = 4294967291

// IsPrime reports whether x is prime. Only odd divisors up to sqrt(x) are
// tried.
func IsPrime(x int) bool {
	if x <= 1 {
		return false
	}
	if x == 2 {
		return true
	}
	if x%2 == 0 {
		return false
	}
	for i := 3; i <= x/i; i += 2 {
		if x%i == 0 {
			return false
		}
	}
	return true
}

// NextPrime returns the smallest prime >= x. It returns 2 for x <= 2 and
// otherwise walks the odd numbers starting at the first odd value >= x.
// It returns 0 when x is above MaxCapacity.
func NextPrime(x int) int {
	if x <= 2 {
		return 2
	}
	if int64(x) > MaxCapacity {
		return 0
	}
	if x%2 == 0 {
		x++
	}
	for !IsPrime(x) {
		x += 2
	}
	return x
}
