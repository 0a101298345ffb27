package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/term"

	"github.com/tandemnet/tandemd/version"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "failed to parse arguments"))
	}

	if cfg.ShowVersion {
		fmt.Printf("genstakekey version %s\n", version.Version())
		return
	}

	keyPair, err := generateKeyPair(cfg)
	if err != nil {
		printErrorAndExit(err)
	}

	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "failed to derive public key"))
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "failed to serialize public key"))
	}

	fmt.Println("This is your stake private key. Keep it safe: it signs every block you produce.")
	fmt.Printf("Private key (hex):\t%x\n\n", keyPair.SerializePrivateKey()[:])
	fmt.Println("This is the public key to embed in your generator boxes.")
	fmt.Printf("Public key (hex):\t%x\n", serializedPublicKey[:])
}

func generateKeyPair(cfg *configFlags) (*secp256k1.SchnorrKeyPair, error) {
	switch {
	case cfg.Recover:
		mnemonic, err := readMnemonic()
		if err != nil {
			return nil, err
		}
		return keyPairFromMnemonic(mnemonic)

	case cfg.Mnemonic:
		entropy, err := bip39.NewEntropy(256)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate entropy")
		}
		mnemonic, err := bip39.NewMnemonic(entropy)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate mnemonic")
		}
		fmt.Println("This is your mnemonic. Anyone with it and your passphrase can recover the key.")
		fmt.Printf("Mnemonic:\t%s\n\n", mnemonic)
		return keyPairFromMnemonic(mnemonic)

	default:
		keyPair, err := secp256k1.GenerateSchnorrKeyPair()
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate private key")
		}
		return keyPair, nil
	}
}

func readMnemonic() (string, error) {
	fmt.Print("Mnemonic: ")
	reader := bufio.NewReader(os.Stdin)
	mnemonic, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "failed to read mnemonic")
	}
	return strings.TrimSpace(mnemonic), nil
}

func keyPairFromMnemonic(mnemonic string) (*secp256k1.SchnorrKeyPair, error) {
	fmt.Print("Passphrase (may be empty): ")
	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read passphrase")
	}

	seed := bip39.NewSeed(mnemonic, string(passphrase))
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(seed[:32])
	if err != nil {
		return nil, errors.Wrap(err, "the derived seed is not a usable private key")
	}
	return keyPair, nil
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
