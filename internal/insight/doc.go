// Package insight turns monthly usage into emission figures and advice.
//
// Everything here is pure: no I/O, no stored state. The package exposes
//
//   - Compute, which applies fixed emission factors to a Usage triple;
//   - SustainabilityScore, a 0..100 figure inversely proportional to the total;
//   - RuleBasedAdvisor, independent threshold rules producing suggestions;
//   - LinearTrendPredictor, a one-step ordinary least squares extrapolation
//     over a user's full history.
package insight
