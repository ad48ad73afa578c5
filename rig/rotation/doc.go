// Package rotation converts blocks of joint rotation deltas between Euler
// angle and quaternion representations.
//
// An [Adapter] post-processes the raw rotation components produced by a
// joint group evaluation. Three adapters exist:
//
//   - [Passthrough] copies components unchanged.
//   - [EulerToQuaternion] reads angles about X, Y and Z and writes a unit
//     quaternion (x, y, z, w).
//   - [QuaternionToEuler] is the inverse direction.
//
// Euler angles are always stored per axis (X, Y, Z), independent of the
// [Order] in which they are applied. Order XYZ applies the X rotation first,
// so the composed quaternion is q = qZ * qY * qX.
//
// Adapters are stateless values; select one per evaluator with [Select].
package rotation
