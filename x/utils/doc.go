/*
Package utils provides decorators that every community application runs its
transactions through.
*/
package utils
